// Package main provides a one-shot utility for claim grant key generation.
//
// It emits the asymmetric keypair used to sign and verify reward claim
// grants.
package main

import (
	"os"

	"github.com/louisbranch/aikira.quest/internal/platform/config"
	"github.com/louisbranch/aikira.quest/internal/tools/grantkey"
)

func main() {
	if err := grantkey.Run(os.Stdout, nil); err != nil {
		config.Exitf("generate claim grant key: %v", err)
	}
}

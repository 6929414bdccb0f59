package scenario

import "github.com/Shopify/go-lua"

const scenarioTypeName = "scenario"

func registerLuaTypes(state *lua.State) {
	registerScenarioType(state)
	registerScenarioConstructor(state)
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "start", Function: scenarioStart},
	{Name: "advance", Function: scenarioAdvance},
	{Name: "click", Function: scenarioClick},
	{Name: "key", Function: scenarioKey},
	{Name: "type_text", Function: scenarioTypeText},
	{Name: "skip_dialogue", Function: scenarioSkipDialogue},
	{Name: "goto_scene", Function: scenarioGotoScene},
	{Name: "reset_terminal", Function: scenarioResetTerminal},
	{Name: "reset_progress", Function: scenarioResetProgress},
	{Name: "claim_reward", Function: scenarioClaimReward},
	{Name: "expect_scene", Function: scenarioExpectScene},
	{Name: "expect_phase", Function: scenarioExpectPhase},
	{Name: "expect_chapter", Function: scenarioExpectChapter},
	{Name: "expect_clue", Function: scenarioExpectClue},
	{Name: "expect_puzzle", Function: scenarioExpectPuzzle},
}

func scenarioStart(state *lua.State) int {
	scenario := checkScenario(state)
	slot := lua.OptString(state, 2, "")
	appendStep(scenario, "start", map[string]any{"slot": slot})
	return 0
}

func scenarioAdvance(state *lua.State) int {
	scenario := checkScenario(state)
	millis := int(lua.CheckNumber(state, 2))
	appendStep(scenario, "advance", map[string]any{"millis": millis})
	return 0
}

func scenarioClick(state *lua.State) int {
	scenario := checkScenario(state)
	x := lua.CheckNumber(state, 2)
	y := lua.CheckNumber(state, 3)
	appendStep(scenario, "click", map[string]any{"x": x, "y": y})
	return 0
}

func scenarioKey(state *lua.State) int {
	scenario := checkScenario(state)
	name := lua.CheckString(state, 2)
	appendStep(scenario, "key", map[string]any{"name": name})
	return 0
}

func scenarioTypeText(state *lua.State) int {
	scenario := checkScenario(state)
	text := lua.CheckString(state, 2)
	appendStep(scenario, "type_text", map[string]any{"text": text})
	return 0
}

func scenarioSkipDialogue(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "skip_dialogue", nil)
	return 0
}

func scenarioGotoScene(state *lua.State) int {
	scenario := checkScenario(state)
	name := lua.CheckString(state, 2)
	appendStep(scenario, "goto_scene", map[string]any{"name": name})
	return 0
}

func scenarioResetTerminal(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "reset_terminal", nil)
	return 0
}

func scenarioResetProgress(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "reset_progress", nil)
	return 0
}

func scenarioClaimReward(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "claim_reward", nil)
	return 0
}

func scenarioExpectScene(state *lua.State) int {
	scenario := checkScenario(state)
	name := lua.CheckString(state, 2)
	appendStep(scenario, "expect_scene", map[string]any{"name": name})
	return 0
}

func scenarioExpectPhase(state *lua.State) int {
	scenario := checkScenario(state)
	name := lua.CheckString(state, 2)
	appendStep(scenario, "expect_phase", map[string]any{"name": name})
	return 0
}

func scenarioExpectChapter(state *lua.State) int {
	scenario := checkScenario(state)
	value := int(lua.CheckNumber(state, 2))
	appendStep(scenario, "expect_chapter", map[string]any{"value": value})
	return 0
}

func scenarioExpectClue(state *lua.State) int {
	scenario := checkScenario(state)
	id := lua.CheckString(state, 2)
	appendStep(scenario, "expect_clue", map[string]any{"id": id})
	return 0
}

func scenarioExpectPuzzle(state *lua.State) int {
	scenario := checkScenario(state)
	kind := lua.CheckString(state, 2)
	appendStep(scenario, "expect_puzzle", map[string]any{"kind": kind})
	return 0
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) {
	if scenario == nil {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
}

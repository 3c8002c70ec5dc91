package game

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// IntentSource produces exactly one Intent per simulation tick. The
// controller is agnostic to where intent comes from; keyboards, replay files
// and scripted pilots all sit behind this boundary.
type IntentSource interface {
	NextIntent(tick uint64, controller *Controller) Intent
}

// LuaIntentSource drives an actor from a Lua script. The script must define
//
//	function getIntent(tick, state)
//	    return {moveX = 1.0, jump = false}
//	end
//
// where state carries the actor's position, velocity, grounded flag and
// contact flags. Script errors degrade to a zero intent rather than failing
// the tick.
type LuaIntentSource struct {
	PilotName string
	script    string
}

// DefaultPilotScript walks right and hops whenever a wall blocks the way.
const DefaultPilotScript = `
	function getIntent(tick, state)
		local jump = state.grounded and state.blockedRight
		return {moveX = 1.0, jump = jump}
	end
`

func NewLuaIntentSource(pilotName, script string) (*LuaIntentSource, error) {
	// Parse once up front so a broken script is rejected before the run
	// starts instead of logging every tick.
	probe := lua.NewState()
	defer probe.Close()
	if err := probe.DoString(script); err != nil {
		return nil, fmt.Errorf("could not parse pilot script: %w", err)
	}
	if probe.GetGlobal("getIntent").Type() != lua.LTFunction {
		return nil, fmt.Errorf("pilot script does not define getIntent")
	}

	return &LuaIntentSource{PilotName: pilotName, script: script}, nil
}

func (source *LuaIntentSource) NextIntent(tick uint64, controller *Controller) Intent {
	luaState := lua.NewState()
	defer luaState.Close()

	if err := luaState.DoString(source.script); err != nil {
		return Intent{}
	}

	luaState.Push(luaState.GetGlobal("getIntent"))
	luaState.Push(lua.LNumber(tick))
	luaState.Push(controllerToLuaTable(luaState, controller))
	if err := luaState.PCall(2, 1, nil); err != nil {
		return Intent{}
	}

	luaTable, ok := luaState.Get(-1).(*lua.LTable)
	if !ok {
		return Intent{}
	}
	intent := convertLuaIntentTable(luaTable)
	luaState.Pop(1)
	return intent
}

func controllerToLuaTable(luaState *lua.LState, controller *Controller) *lua.LTable {
	table := luaState.NewTable()
	luaState.SetField(table, "x", lua.LNumber(controller.Aabb.CenterX))
	luaState.SetField(table, "y", lua.LNumber(controller.Aabb.CenterY))
	luaState.SetField(table, "vx", lua.LNumber(controller.VelocityX))
	luaState.SetField(table, "vy", lua.LNumber(controller.VelocityY))
	luaState.SetField(table, "grounded", lua.LBool(controller.Grounded))
	luaState.SetField(table, "blockedLeft", lua.LBool(controller.Contacts.Left))
	luaState.SetField(table, "blockedRight", lua.LBool(controller.Contacts.Right))
	luaState.SetField(table, "blockedUp", lua.LBool(controller.Contacts.Up))
	luaState.SetField(table, "blockedDown", lua.LBool(controller.Contacts.Down))
	return table
}

func convertLuaIntentTable(luaTbl *lua.LTable) Intent {
	result := Intent{}
	luaTbl.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString {
			return
		}
		switch lua.LVAsString(key) {
		case "moveX":
			result.MoveX = Clamp(float64(lua.LVAsNumber(value)), -1, 1)
		case "jump":
			result.Jump = lua.LVAsBool(value)
		}
	})
	return result
}

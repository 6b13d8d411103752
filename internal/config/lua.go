package config

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// LoadLua executes a Lua rule script and collects the rules it declares.
func LoadLua(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule script %s: %w", path, err)
	}
	return parseLua(path, string(data))
}

// LoadLuaString executes Lua rule source directly.
func LoadLuaString(source string) (*File, error) {
	return parseLua("<string>", source)
}

func parseLua(source, script string) (*File, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// Only base, table and string libraries. The package library must
	// be opened first for OpenBase, then gets neutered below.
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return nil, fmt.Errorf("opening lua lib %s: %w", lib.name, err)
		}
	}

	// Clear package.path and package.cpath so nothing can be resolved
	// from disk even if a loader survives.
	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}

	// Remove load primitives and require so scripts cannot pull in
	// code from disk. Rule scripts declare bindings; they get no
	// modules, filesystem, os or network access.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "package"} {
		L.SetGlobal(name, lua.LNil)
	}

	f := &File{}

	L.SetGlobal("protect", L.NewFunction(func(L *lua.LState) int {
		f.Rules = append(f.Rules, RuleEntry{
			Keys: L.CheckString(1),
			Map:  L.OptString(2, ""),
		})
		return 0
	}))

	L.SetGlobal("verbosity", L.NewFunction(func(L *lua.LState) int {
		f.Verbosity = L.CheckString(1)
		return 0
	}))

	if err := L.DoString(script); err != nil {
		return nil, fmt.Errorf("running %s: %w", source, err)
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return f, nil
}

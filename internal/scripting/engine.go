package scripting

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/combiner/clicker/internal/world"
)

// Engine wraps a single gopher-lua VM holding the economy rules.
// Single-goroutine access only (tick loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
// Missing subdirectories are skipped, leaving the built-in defaults in force.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	for _, sub := range []string{"core", "economy"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Info("loaded lua script", zap.String("file", path))
	}
	return nil
}

// EconomyRules are the balance-tuning knobs scripts may override.
type EconomyRules struct {
	CollectorExponent int   // credited amount = value ^ exponent
	HoverExponent     int
	ClickCoinValue    int64 // value of a coin spawned by clicking
}

func DefaultEconomy() EconomyRules {
	return EconomyRules{CollectorExponent: 1, HoverExponent: 1, ClickCoinValue: 1}
}

// GetEconomy calls Lua payout_exponent(source) and click_coin_value().
// Missing functions, script errors and out-of-range results fall back to
// the defaults.
func (e *Engine) GetEconomy() EconomyRules {
	r := DefaultEconomy()
	if n, ok := e.callNumber("payout_exponent", lua.LString(world.PayoutCollector.String())); ok {
		r.CollectorExponent = e.atLeastOne("payout_exponent(collector)", int(n), r.CollectorExponent)
	}
	if n, ok := e.callNumber("payout_exponent", lua.LString(world.PayoutHover.String())); ok {
		r.HoverExponent = e.atLeastOne("payout_exponent(hover)", int(n), r.HoverExponent)
	}
	if n, ok := e.callNumber("click_coin_value"); ok {
		r.ClickCoinValue = int64(e.atLeastOne("click_coin_value", int(n), int(r.ClickCoinValue)))
	}
	return r
}

func (e *Engine) atLeastOne(what string, v, fallback int) int {
	if v < 1 {
		e.log.Warn("lua result out of range, using default",
			zap.String("func", what), zap.Int("got", v), zap.Int("default", fallback))
		return fallback
	}
	return v
}

// Payout raises a credited coin's value to the exponent for its source.
func (r EconomyRules) Payout(value *big.Int, src world.PayoutSource) *big.Int {
	exp := 1
	switch src {
	case world.PayoutCollector:
		exp = r.CollectorExponent
	case world.PayoutHover:
		exp = r.HoverExponent
	}
	if exp <= 1 {
		return new(big.Int).Set(value)
	}
	return new(big.Int).Exp(value, big.NewInt(int64(exp)), nil)
}

// callNumber calls a global Lua function and returns its numeric result.
// A function that is not defined reports false without logging.
func (e *Engine) callNumber(name string, args ...lua.LValue) (lua.LNumber, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return 0, false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0, false
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned a non-number",
			zap.String("func", name), zap.String("type", result.Type().String()))
		return 0, false
	}
	return n, true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// Package hud formats the player-facing strings drawn over the factory:
// the balance readout and the build shop.
package hud

import (
	"fmt"
	"math/big"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/combiner/clicker/internal/world"
)

// Message keys. Untranslated keys print as themselves.
const (
	keyBalance = "Balance: %s"
	keyLocked  = "???"
	keyTool    = "Tool: %s"
	keyNoTool  = "Tool: none"
	keyCost    = "%s (%s)"
)

var zhTW = map[string]string{
	keyBalance:         "餘額: %s",
	keyTool:            "工具: %s",
	keyNoTool:          "工具: 無",
	"Miner":            "採礦機",
	"Collector":        "收集器",
	"Conveyor (up)":    "輸送帶 (上)",
	"Conveyor (down)":  "輸送帶 (下)",
	"Conveyor (left)":  "輸送帶 (左)",
	"Conveyor (right)": "輸送帶 (右)",
	"Adder":            "加法器",
	"Multiplier":       "乘法器",
}

// Formatter renders HUD text for one language.
type Formatter struct {
	tag language.Tag
	p   *message.Printer
}

// NewFormatter parses a BCP-47 tag such as "en" or "zh-TW".
func NewFormatter(lang string) (*Formatter, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("hud language %q: %w", lang, err)
	}
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, t := range []language.Tag{language.MustParse("zh-TW"), language.TraditionalChinese} {
		for key, msg := range zhTW {
			if err := b.SetString(t, key, msg); err != nil {
				return nil, fmt.Errorf("hud catalog %s: %w", key, err)
			}
		}
	}
	return &Formatter{tag: tag, p: message.NewPrinter(tag, message.Catalog(b))}, nil
}

func (f *Formatter) Language() language.Tag { return f.tag }

// FormatAmount groups digits the way the language does. Amounts beyond
// int64 fall back to plain digits.
func (f *Formatter) FormatAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	if v.IsInt64() {
		return f.p.Sprintf("%d", v.Int64())
	}
	return v.String()
}

func (f *Formatter) Balance(v *big.Int) string {
	return f.p.Sprintf(keyBalance, f.FormatAmount(v))
}

// MachineName translates a catalog display name.
func (f *Formatter) MachineName(name string) string {
	return f.p.Sprintf(name)
}

func (f *Formatter) Tool(spec world.MachineSpec, ok bool) string {
	if !ok {
		return f.p.Sprintf(keyNoTool)
	}
	return f.p.Sprintf(keyTool, f.MachineName(spec.Name))
}

// ShopEntry is one line of the build menu. Hotkey is 1-based.
type ShopEntry struct {
	Kind   world.MachineKind
	Hotkey int
	Label  string
	Cost   string
	Locked bool
}

// Shop lists specs in order. Machines the balance cannot cover are shown
// as "???" until they become affordable.
func (f *Formatter) Shop(specs []world.MachineSpec, balance *big.Int) []ShopEntry {
	out := make([]ShopEntry, 0, len(specs))
	for i, s := range specs {
		e := ShopEntry{
			Kind:   s.Kind,
			Hotkey: i + 1,
			Cost:   f.FormatAmount(big.NewInt(s.Cost)),
		}
		if balance == nil || balance.Cmp(big.NewInt(s.Cost)) < 0 {
			e.Locked = true
			e.Label = f.p.Sprintf(keyLocked)
		} else {
			e.Label = f.MachineName(s.Name)
		}
		out = append(out, e)
	}
	return out
}

// Line renders an entry as "1. Miner (20)".
func (f *Formatter) Line(e ShopEntry) string {
	return fmt.Sprintf("%d. %s", e.Hotkey, f.p.Sprintf(keyCost, e.Label, e.Cost))
}

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/fatih/color"

	"github.com/evmcore/evmi"
	"github.com/evmcore/evmi/hooks"
	"github.com/evmcore/evmi/util"
)

// G is the debugger's single mutable session: one fixture file, one live
// Session, built fresh on every "load".
var G = struct {
	JsonFile string
	fixture  *evmi.Fixture
	sess     *evmi.Session
	asm      *evmi.Asm
}{
	JsonFile: "sample.json",
}

var suggestions = []prompt.Suggest{
	{Text: "help", Description: "Show all commands"},
	{Text: "ctx", Description: "Show the execution context"},
	{Text: "mem [offset size]", Description: "Show memory"},
	{Text: "storage", Description: "Show storage"},
	{Text: "stack", Description: "Show stack items"},
	{Text: "p [pc]", Description: "Show asm at current/target PC"},
	{Text: "load [.json]", Description: "Reload current .json file (default: sample.json)"},
	{Text: "save [.json]", Description: "Save fixture to current .json file (default: sample.json)"},
	{Text: "low", Description: "Start low level trace"},
	{Text: "log", Description: "Log every executed instruction to file"},
	{Text: "n", Description: "Single step"},
	{Text: "c", Description: "Continue"},
	{Text: "b", Description: "Breakpoint"},
}

func completer(in prompt.Document) []prompt.Suggest {
	if in.Text == "" {
		return nil
	}
	args := strings.Split(in.Text, " ")
	if len(args) == 1 {
		return prompt.FilterHasPrefix(suggestions, in.GetWordBeforeCursor(), true)
	}
	return nil
}

func showDisasm(pc uint64) {
	line, e := G.asm.LineAtPc(pc)
	if e != nil {
		color.Red(e.Error())
		return
	}

	row := 0
	for i := 0; i < G.asm.LineCount(); i++ {
		if G.asm.AtRow(i).Pc == line.Pc {
			row = i
			break
		}
	}
	beg := util.Max(row-4, 0)
	end := util.Min(row+4, G.asm.LineCount())

	for r := beg; r < end; r++ {
		l := G.asm.AtRow(r)
		if l.Pc == pc {
			color.Blue(l.String())
		} else {
			fmt.Println(l)
		}
	}
}

func loadFixture(fn string) error {
	fixture, e := evmi.LoadFixture(fn)
	if e != nil {
		return e
	}
	G.fixture = fixture
	G.asm = evmi.Disassemble(fixture.Bytecode)
	G.sess = evmi.NewSession(fixture.ToContext(), fixture.Bytecode)
	return nil
}

func executor(in string) {
	in = strings.TrimSpace(in)
	if in == "" {
		in = "n" // press enter -> single step
	}

	arg := strings.Split(in, " ")
	argc := len(arg)
	cmd := arg[0]

	if G.sess == nil && cmd != "load" && cmd != "help" {
		color.Red("'load' first")
		return
	}

	switch cmd {
	case "help":
		for _, s := range suggestions {
			color.HiBlue("%s \t %s", s.Text, color.WhiteString(s.Description))
		}
		return

	case "ctx", "context":
		fmt.Println(toPrettyJSON(G.sess.Ctx()))
		return

	case "m", "mem", "memory":
		data := G.sess.Memory().Data()
		switch argc {
		case 1:
			fmt.Println(hex.Dump(data))
			return
		case 3:
			offset, e2 := parseAnyInt(arg[1])
			size, e3 := parseAnyInt(arg[2])
			if e2 != nil || e3 != nil {
				color.Red("wrong format, usage: mem <offset> <len>")
				return
			}
			if offset+size > uint64(len(data)) {
				color.Red("invalid memory region, %d > %d", offset+size, len(data))
				return
			}
			fmt.Println(hex.Dump(data[offset : offset+size]))
			return
		}

	case "storage", "sto":
		fmt.Println(toPrettyJSON(G.sess.Storage()))
		return

	case "s", "stack":
		fmt.Println(toPrettyJSON(G.sess.Stack()))
		return

	case "p", "print":
		pc := G.sess.Pc()
		if argc == 2 {
			v, e := parseAnyInt(arg[1])
			if e != nil {
				color.Red(e.Error())
				return
			}
			pc = v
		}
		showDisasm(pc)
		return

	case "save":
		fn := G.JsonFile
		if argc == 2 {
			fn = arg[1]
		}
		if e := G.fixture.Save(fn); e != nil {
			color.Red("fail save json: " + e.Error())
			return
		}
		color.Green("saved to '%s'", fn)
		return

	case "load", "reload":
		if argc > 1 {
			G.JsonFile = arg[1]
		}
		if e := loadFixture(G.JsonFile); e != nil {
			color.Red(e.Error())
			return
		}
		color.Green("loaded: %s", G.JsonFile)
		showDisasm(G.sess.Pc())
		return

	case "low", "lowleveltrace":
		h := G.sess.Hooks()
		if h == nil {
			h = &evmi.Hooks{}
			G.sess.SetHooks(h)
		}
		h.Attach(hooks.NewLowLevelTracer())
		color.Yellow("tracing low-level operations")
		return

	case "log", "evm_log":
		fn := strings.Replace(G.JsonFile, ".json", ".log", 1)
		fd, e := os.OpenFile(fn, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
		if e != nil {
			color.Red(e.Error())
			return
		}
		h := G.sess.Hooks()
		if h == nil {
			h = &evmi.Hooks{}
			G.sess.SetHooks(h)
		}
		h.Attach(&hooks.EvmLog{Fd: fd})
		color.Yellow("logging to '%s'", fn)
		return

	case "n", "next":
		_, e := G.sess.Step()
		if e != nil && !errors.Is(e, hooks.ErrBreakpoint) {
			color.Red(e.Error())
		}
		if G.sess.Done() {
			ok, _ := G.sess.Result()
			if ok {
				color.Green("\nall done.\n\n")
			} else {
				color.Red("\nhalted.\n\n")
			}
			return
		}
		showDisasm(G.sess.Pc())
		return

	case "c", "continue", "r", "run":
		_, e := G.sess.Run(-1)
		if e != nil {
			if errors.Is(e, hooks.ErrBreakpoint) {
				color.Yellow("interrupted: %s", e.Error())
			} else {
				color.Red(e.Error())
			}
		} else if G.sess.Done() {
			ok, _ := G.sess.Result()
			if ok {
				color.Green("\nall done.\n\n")
			} else {
				color.Red("\nhalted.\n\n")
			}
		}
		if !G.sess.Done() {
			showDisasm(G.sess.Pc())
		}
		return

	case "b", "bp", "breakpoint":
		h := G.sess.Hooks()
		if h == nil {
			h = &evmi.Hooks{}
			G.sess.SetHooks(h)
		}
		if argc == 2 && arg[1] == "l" {
			for i, hk := range h.List() {
				fmt.Printf("%d: %v\n", i, hk)
			}
			return
		}
		if argc == 3 && arg[1] == "d" {
			if i, e := strconv.Atoi(arg[2]); e == nil {
				h.Detach(i)
				return
			}
		}
		if argc >= 3 {
			switch arg[1] {
			case "op":
				opStr := strings.ToUpper(arg[2])
				op := vm.StringToOp(opStr)
				// StringToOp returns STOP for any unrecognised input.
				if op == vm.STOP && opStr != "STOP" {
					color.Red("wrong op string")
					return
				}
				bp := &hooks.BpOpCode{OpCode: op}
				h.Attach(bp)
				color.Yellow("bp added: %v", bp)
				return
			case "pc":
				pc, e := parseAnyInt(arg[2])
				if e != nil {
					color.Red("wrong pc format")
					return
				}
				bp := &hooks.BpPc{Pc: pc}
				h.Attach(bp)
				color.Yellow("bp added: %v", bp)
				return
			}
		}
	}
	color.Red("unknown command")
}

func main() {
	if !util.FileExist(G.JsonFile) {
		evmi.NewSampleFixture().Save(G.JsonFile)
		fmt.Printf("A sample config '%s' generated, load it with '%s'\n",
			color.MagentaString(G.JsonFile), color.CyanString("load"))
	}

	p := prompt.New(
		executor,
		completer,
		prompt.OptionPrefix(">>> "),
	)
	p.Run()
}

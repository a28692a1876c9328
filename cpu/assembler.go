// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
	"CYCLE":  "0",
}

var parenRegexp = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler is a single pass assembler for the handheld device.
type Assembler struct {
	Logger *slog.Logger // If set, logs the assembler actions at debug level.
	Opcode []Opcode     // List of generated opcodes.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
	cycles    uint32            // Cycles consumed by the generated opcodes.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

func (asm *Assembler) debug(msg string, args ...any) {
	if asm.Logger != nil {
		asm.Logger.Log(context.Background(), slog.LevelDebug, msg, args...)
	}
}

// valueOf returns the value of a simple word.
// Plain words are decimal; 0x, 0o and 0b prefixes are honored.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		v64, err = strconv.ParseInt(word, 0, 64)
	}
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be mnemonics
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseLine expands a single line into opcode words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = strconv.Itoa(lineno)
	asm.Equate["CYCLE"] = strconv.FormatUint(uint64(asm.cycles), 10)

	// Do $() evaluations
	line = parenRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return strconv.Itoa(value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// parseWords decodes a single instruction and appends it to the listing.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	var in Instruction

	name, args := words[0], words[1:]
	switch name {
	case OP_NOOP.String():
		if len(args) != 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		in = MakeNoop()
	case OP_ADD.String():
		switch {
		case len(args) == 0:
			err = ErrOpcodeValueMissing
			return
		case len(args) > 1:
			err = ErrOpcodeExtraArgs
			return
		}
		var delta int
		delta, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		in = MakeAdd(REGISTER_X, delta)
	default:
		err = ErrOpcodeInvalid(name)
		return
	}

	asm.debug("asm: opcode", "line", lineno, "cycle", asm.cycles+1, "op", in.String())

	asm.Opcode = append(asm.Opcode, Opcode{
		LineNo:      lineno,
		Words:       slices.Clone(words),
		Instruction: in,
	})
	asm.cycles += uint32(in.Latency())

	return
}

// Parse assembles a program, one instruction per line.
// Text after a ';' is a comment. No program is returned on error.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	asm.cycles = 0
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		text_comment := strings.SplitN(text, ";", 2)
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

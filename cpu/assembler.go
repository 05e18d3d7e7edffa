// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Assembler is a single pass assembler for the superoptimizer ISA.
type Assembler struct {
	Verbose bool    // If set, verbosely logs the assembler actions.
	Bounds  *Bounds // If set, instructions are checked against the bounds.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// opMap maps mnemonics to opcodes.
var opMap = func() map[string]OpCode {
	ops := make(map[string]OpCode, len(opInfo))
	for _, info := range opInfo {
		ops[info.Op.String()] = info.Op
	}
	return ops
}()

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 0, 0)
	if err != nil || v64 < 0 {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseLine parses a single line, and returns the mnemonic and arguments.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	// .equ CONST VALUE
	if fields[0] == ".equ" {
		if len(fields) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[fields[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[fields[1]] = fields[2]
		return
	}

	words = []string{fields[0]}

	rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
	if len(rest) == 0 {
		return
	}

	for _, arg := range strings.Split(rest, ",") {
		arg = strings.TrimSpace(arg)
		if len(arg) == 0 || strings.ContainsAny(arg, " \t") {
			err = ErrArgSyntax
			return
		}
		equate, ok := asm.Equate[arg]
		if ok {
			arg = equate
		}
		words = append(words, arg)
	}

	return
}

// parseWords converts a mnemonic and its arguments into an instruction.
func (asm *Assembler) parseWords(words []string) (ins Instruction, err error) {
	op, ok := opMap[strings.ToUpper(words[0])]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := make([]int, len(words)-1)
	for n, word := range words[1:] {
		args[n], err = asm.valueOf(word)
		if err != nil {
			return
		}
	}

	bounds := Bounds{Cells: int(^uint(0) >> 1), Values: int(^uint(0) >> 1)}
	if asm.Bounds != nil {
		bounds = *asm.Bounds
	}

	ins, err = bounds.Make(op, args...)

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Equate = map[string]string{"LINENO": "0"}
	maps.Copy(asm.Equate, asm.predefine)

	prog = Program{}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
		if len(words) == 0 {
			continue
		}

		var ins Instruction
		ins, err = asm.parseWords(words)
		if err != nil {
			return
		}

		prog = append(prog, ins)
	}

	err = scanner.Err()

	return
}

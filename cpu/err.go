package cpu

import (
	"errors"

	"github.com/ezrec/handheld/translate"
)

var f = translate.From

var (
	// Instruction decode errors
	ErrOpcodeMissing      = errors.New(f("opcode missing"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
)

// ErrOpcodeInvalid names an instruction mnemonic that is not part of the
// instruction set.
type ErrOpcodeInvalid string

func (err ErrOpcodeInvalid) Error() string {
	return f("opcode '%v' invalid", string(err))
}

// ErrRegisterMissing names a register absent from a register bank.
type ErrRegisterMissing rune

func (err ErrRegisterMissing) Error() string {
	return f("register %c missing", rune(err))
}

// ErrConfiguration rejects an out-of-range parameter to a trace consumer.
type ErrConfiguration struct {
	Param string
	Value int
}

func (err ErrConfiguration) Error() string {
	return f("invalid configuration %v=%v", err.Param, err.Value)
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

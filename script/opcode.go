package script

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// OpCode 单字节操作码
type OpCode byte

const (
	// push value
	OP_0         OpCode = 0x00
	OP_PUSHDATA1 OpCode = 0x4c
	OP_PUSHDATA2 OpCode = 0x4d
	OP_PUSHDATA4 OpCode = 0x4e
	OP_1NEGATE   OpCode = 0x4f
	OP_RESERVED  OpCode = 0x50
	OP_1         OpCode = 0x51
	OP_2         OpCode = 0x52
	OP_3         OpCode = 0x53
	OP_4         OpCode = 0x54
	OP_5         OpCode = 0x55
	OP_6         OpCode = 0x56
	OP_7         OpCode = 0x57
	OP_8         OpCode = 0x58
	OP_9         OpCode = 0x59
	OP_10        OpCode = 0x5a
	OP_11        OpCode = 0x5b
	OP_12        OpCode = 0x5c
	OP_13        OpCode = 0x5d
	OP_14        OpCode = 0x5e
	OP_15        OpCode = 0x5f
	OP_16        OpCode = 0x60

	// control
	OP_NOP      OpCode = 0x61
	OP_VER      OpCode = 0x62
	OP_IF       OpCode = 0x63
	OP_NOTIF    OpCode = 0x64
	OP_VERIF    OpCode = 0x65
	OP_VERNOTIF OpCode = 0x66
	OP_ELSE     OpCode = 0x67
	OP_ENDIF    OpCode = 0x68
	OP_VERIFY   OpCode = 0x69
	OP_RETURN   OpCode = 0x6a

	// stack ops
	OP_TOALTSTACK   OpCode = 0x6b
	OP_FROMALTSTACK OpCode = 0x6c
	OP_2DROP        OpCode = 0x6d
	OP_2DUP         OpCode = 0x6e
	OP_3DUP         OpCode = 0x6f
	OP_2OVER        OpCode = 0x70
	OP_2ROT         OpCode = 0x71
	OP_2SWAP        OpCode = 0x72
	OP_IFDUP        OpCode = 0x73
	OP_DEPTH        OpCode = 0x74
	OP_DROP         OpCode = 0x75
	OP_DUP          OpCode = 0x76
	OP_NIP          OpCode = 0x77
	OP_OVER         OpCode = 0x78
	OP_PICK         OpCode = 0x79
	OP_ROLL         OpCode = 0x7a
	OP_ROT          OpCode = 0x7b
	OP_SWAP         OpCode = 0x7c
	OP_TUCK         OpCode = 0x7d

	// splice ops
	OP_CAT     OpCode = 0x7e
	OP_SPLIT   OpCode = 0x7f
	OP_NUM2BIN OpCode = 0x80
	OP_BIN2NUM OpCode = 0x81
	OP_SIZE    OpCode = 0x82

	// bit logic
	OP_INVERT      OpCode = 0x83
	OP_AND         OpCode = 0x84
	OP_OR          OpCode = 0x85
	OP_XOR         OpCode = 0x86
	OP_EQUAL       OpCode = 0x87
	OP_EQUALVERIFY OpCode = 0x88
	OP_RESERVED1   OpCode = 0x89
	OP_RESERVED2   OpCode = 0x8a

	// numeric
	OP_1ADD      OpCode = 0x8b
	OP_1SUB      OpCode = 0x8c
	OP_2MUL      OpCode = 0x8d
	OP_2DIV      OpCode = 0x8e
	OP_NEGATE    OpCode = 0x8f
	OP_ABS       OpCode = 0x90
	OP_NOT       OpCode = 0x91
	OP_0NOTEQUAL OpCode = 0x92

	OP_ADD    OpCode = 0x93
	OP_SUB    OpCode = 0x94
	OP_MUL    OpCode = 0x95
	OP_DIV    OpCode = 0x96
	OP_MOD    OpCode = 0x97
	OP_LSHIFT OpCode = 0x98
	OP_RSHIFT OpCode = 0x99

	OP_BOOLAND            OpCode = 0x9a
	OP_BOOLOR             OpCode = 0x9b
	OP_NUMEQUAL           OpCode = 0x9c
	OP_NUMEQUALVERIFY     OpCode = 0x9d
	OP_NUMNOTEQUAL        OpCode = 0x9e
	OP_LESSTHAN           OpCode = 0x9f
	OP_GREATERTHAN        OpCode = 0xa0
	OP_LESSTHANOREQUAL    OpCode = 0xa1
	OP_GREATERTHANOREQUAL OpCode = 0xa2
	OP_MIN                OpCode = 0xa3
	OP_MAX                OpCode = 0xa4

	OP_WITHIN OpCode = 0xa5

	// crypto
	OP_RIPEMD160           OpCode = 0xa6
	OP_SHA1                OpCode = 0xa7
	OP_SHA256              OpCode = 0xa8
	OP_HASH160             OpCode = 0xa9
	OP_HASH256             OpCode = 0xaa
	OP_CODESEPARATOR       OpCode = 0xab
	OP_CHECKSIG            OpCode = 0xac
	OP_CHECKSIGVERIFY      OpCode = 0xad
	OP_CHECKMULTISIG       OpCode = 0xae
	OP_CHECKMULTISIGVERIFY OpCode = 0xaf

	// expansion
	OP_NOP1                OpCode = 0xb0
	OP_CHECKLOCKTIMEVERIFY OpCode = 0xb1
	OP_CHECKSEQUENCEVERIFY OpCode = 0xb2
	OP_NOP4                OpCode = 0xb3
	OP_NOP5                OpCode = 0xb4
	OP_NOP6                OpCode = 0xb5
	OP_NOP7                OpCode = 0xb6
	OP_NOP8                OpCode = 0xb7
	OP_NOP9                OpCode = 0xb8
	OP_NOP10               OpCode = 0xb9

	OP_INVALIDOPCODE OpCode = 0xff
)

// ASM 中 OP_0 与 OP_1NEGATE 的简写
const (
	asmZero        = "0"
	asmNegativeOne = "-1"
	unknownPrefix  = "OP_UNKNOWN"
)

// opcodeNames 操作码表，下标为编码，空串表示未定义。初始化后只读。
var opcodeNames = [256]string{
	OP_0:         "OP_0",
	OP_PUSHDATA1: "OP_PUSHDATA1",
	OP_PUSHDATA2: "OP_PUSHDATA2",
	OP_PUSHDATA4: "OP_PUSHDATA4",
	OP_1NEGATE:   "OP_1NEGATE",
	OP_RESERVED:  "OP_RESERVED",
	OP_1:         "OP_1",
	OP_2:         "OP_2",
	OP_3:         "OP_3",
	OP_4:         "OP_4",
	OP_5:         "OP_5",
	OP_6:         "OP_6",
	OP_7:         "OP_7",
	OP_8:         "OP_8",
	OP_9:         "OP_9",
	OP_10:        "OP_10",
	OP_11:        "OP_11",
	OP_12:        "OP_12",
	OP_13:        "OP_13",
	OP_14:        "OP_14",
	OP_15:        "OP_15",
	OP_16:        "OP_16",

	OP_NOP:      "OP_NOP",
	OP_VER:      "OP_VER",
	OP_IF:       "OP_IF",
	OP_NOTIF:    "OP_NOTIF",
	OP_VERIF:    "OP_VERIF",
	OP_VERNOTIF: "OP_VERNOTIF",
	OP_ELSE:     "OP_ELSE",
	OP_ENDIF:    "OP_ENDIF",
	OP_VERIFY:   "OP_VERIFY",
	OP_RETURN:   "OP_RETURN",

	OP_TOALTSTACK:   "OP_TOALTSTACK",
	OP_FROMALTSTACK: "OP_FROMALTSTACK",
	OP_2DROP:        "OP_2DROP",
	OP_2DUP:         "OP_2DUP",
	OP_3DUP:         "OP_3DUP",
	OP_2OVER:        "OP_2OVER",
	OP_2ROT:         "OP_2ROT",
	OP_2SWAP:        "OP_2SWAP",
	OP_IFDUP:        "OP_IFDUP",
	OP_DEPTH:        "OP_DEPTH",
	OP_DROP:         "OP_DROP",
	OP_DUP:          "OP_DUP",
	OP_NIP:          "OP_NIP",
	OP_OVER:         "OP_OVER",
	OP_PICK:         "OP_PICK",
	OP_ROLL:         "OP_ROLL",
	OP_ROT:          "OP_ROT",
	OP_SWAP:         "OP_SWAP",
	OP_TUCK:         "OP_TUCK",

	OP_CAT:     "OP_CAT",
	OP_SPLIT:   "OP_SPLIT",
	OP_NUM2BIN: "OP_NUM2BIN",
	OP_BIN2NUM: "OP_BIN2NUM",
	OP_SIZE:    "OP_SIZE",

	OP_INVERT:      "OP_INVERT",
	OP_AND:         "OP_AND",
	OP_OR:          "OP_OR",
	OP_XOR:         "OP_XOR",
	OP_EQUAL:       "OP_EQUAL",
	OP_EQUALVERIFY: "OP_EQUALVERIFY",
	OP_RESERVED1:   "OP_RESERVED1",
	OP_RESERVED2:   "OP_RESERVED2",

	OP_1ADD:      "OP_1ADD",
	OP_1SUB:      "OP_1SUB",
	OP_2MUL:      "OP_2MUL",
	OP_2DIV:      "OP_2DIV",
	OP_NEGATE:    "OP_NEGATE",
	OP_ABS:       "OP_ABS",
	OP_NOT:       "OP_NOT",
	OP_0NOTEQUAL: "OP_0NOTEQUAL",

	OP_ADD:    "OP_ADD",
	OP_SUB:    "OP_SUB",
	OP_MUL:    "OP_MUL",
	OP_DIV:    "OP_DIV",
	OP_MOD:    "OP_MOD",
	OP_LSHIFT: "OP_LSHIFT",
	OP_RSHIFT: "OP_RSHIFT",

	OP_BOOLAND:            "OP_BOOLAND",
	OP_BOOLOR:             "OP_BOOLOR",
	OP_NUMEQUAL:           "OP_NUMEQUAL",
	OP_NUMEQUALVERIFY:     "OP_NUMEQUALVERIFY",
	OP_NUMNOTEQUAL:        "OP_NUMNOTEQUAL",
	OP_LESSTHAN:           "OP_LESSTHAN",
	OP_GREATERTHAN:        "OP_GREATERTHAN",
	OP_LESSTHANOREQUAL:    "OP_LESSTHANOREQUAL",
	OP_GREATERTHANOREQUAL: "OP_GREATERTHANOREQUAL",
	OP_MIN:                "OP_MIN",
	OP_MAX:                "OP_MAX",
	OP_WITHIN:             "OP_WITHIN",

	OP_RIPEMD160:           "OP_RIPEMD160",
	OP_SHA1:                "OP_SHA1",
	OP_SHA256:              "OP_SHA256",
	OP_HASH160:             "OP_HASH160",
	OP_HASH256:             "OP_HASH256",
	OP_CODESEPARATOR:       "OP_CODESEPARATOR",
	OP_CHECKSIG:            "OP_CHECKSIG",
	OP_CHECKSIGVERIFY:      "OP_CHECKSIGVERIFY",
	OP_CHECKMULTISIG:       "OP_CHECKMULTISIG",
	OP_CHECKMULTISIGVERIFY: "OP_CHECKMULTISIGVERIFY",

	OP_NOP1:                "OP_NOP1",
	OP_CHECKLOCKTIMEVERIFY: "OP_CHECKLOCKTIMEVERIFY",
	OP_CHECKSEQUENCEVERIFY: "OP_CHECKSEQUENCEVERIFY",
	OP_NOP4:                "OP_NOP4",
	OP_NOP5:                "OP_NOP5",
	OP_NOP6:                "OP_NOP6",
	OP_NOP7:                "OP_NOP7",
	OP_NOP8:                "OP_NOP8",
	OP_NOP9:                "OP_NOP9",
	OP_NOP10:               "OP_NOP10",

	OP_INVALIDOPCODE: "OP_INVALIDOPCODE",
}

// opcodeByName 助记符 => 操作码，在 init 中由 opcodeNames 生成
var opcodeByName map[string]OpCode

func init() {
	opcodeByName = make(map[string]OpCode, len(opcodeNames))
	for code, name := range opcodeNames {
		if name == "" {
			continue
		}
		opcodeByName[name] = OpCode(code)
	}
}

// ByMnemonic 根据助记符查找操作码。"0" 与 "-1" 分别对应 OP_0 和 OP_1NEGATE。
func ByMnemonic(mnemonic string) (OpCode, error) {
	switch mnemonic {
	case asmZero:
		return OP_0, nil
	case asmNegativeOne:
		return OP_1NEGATE, nil
	}
	op, ok := opcodeByName[mnemonic]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidOpCode, "mnemonic %q", mnemonic)
	}
	return op, nil
}

// ByCode 根据编码查找操作码，未定义的编码返回 ErrInvalidOpCode
func ByCode(code byte) (OpCode, error) {
	if opcodeNames[code] == "" {
		return 0, errors.Wrapf(ErrInvalidOpCode, "code %d", code)
	}
	return OpCode(code), nil
}

// Opcodes 按编码升序返回全部已定义的操作码
func Opcodes() []OpCode {
	ops := make([]OpCode, 0, len(opcodeByName))
	for code, name := range opcodeNames {
		if name != "" {
			ops = append(ops, OpCode(code))
		}
	}
	return ops
}

// Code 操作码的字节值
func (op OpCode) Code() byte {
	return byte(op)
}

// IsValid 是否为操作码表中定义的操作码
func (op OpCode) IsValid() bool {
	return opcodeNames[op] != ""
}

// Mnemonic 助记符。未定义的操作码返回 OP_UNKNOWN<编码>。
func (op OpCode) Mnemonic() string {
	if name := opcodeNames[op]; name != "" {
		return name
	}
	return unknownPrefix + strconv.Itoa(int(op))
}

// Bytes 单字节的二进制编码
func (op OpCode) Bytes() []byte {
	return []byte{byte(op)}
}

func (op OpCode) String() string {
	return op.Mnemonic()
}

// asm 操作码在 ASM 文本中的形式
func (op OpCode) asm() string {
	switch op {
	case OP_0:
		return asmZero
	case OP_1NEGATE:
		return asmNegativeOne
	}
	return op.Mnemonic()
}

// parseUnknown 解析 OP_UNKNOWN<编码> 形式的 token。
// 只接受 FromBuffer 会产生的未知操作码：未定义且不在推送区间内。
func parseUnknown(token string) (OpCode, bool) {
	if !strings.HasPrefix(token, unknownPrefix) {
		return 0, false
	}
	code, err := strconv.ParseUint(token[len(unknownPrefix):], 10, 8)
	if err != nil {
		return 0, false
	}
	op := OpCode(code)
	if op.IsValid() || op <= OP_PUSHDATA4 {
		return 0, false
	}
	return op, true
}


package script

import (
	"bytes"
	"encoding/hex"
	"math"
)

// ChunkKind 脚本块的类型
type ChunkKind uint8

const (
	OpcodeChunk ChunkKind = iota + 1 // 操作码
	DataChunk                        // 推送到栈上的数据
)

func (k ChunkKind) String() string {
	switch k {
	case OpcodeChunk:
		return "opcode"
	case DataChunk:
		return "data"
	default:
		return "unknown"
	}
}

// Chunk 脚本中的一个元素，要么是操作码，要么是一段数据
type Chunk struct {
	kind ChunkKind
	op   OpCode
	data []byte
	push OpCode // 解析时使用的 OP_PUSHDATA1/2/4，零值表示按最短形式编码
}

func NewOpcodeChunk(op OpCode) Chunk {
	return Chunk{kind: OpcodeChunk, op: op}
}

// NewDataChunk 数据块，持有 data 的副本
func NewDataChunk(data []byte) Chunk {
	d := make([]byte, len(data))
	copy(d, data)
	return Chunk{kind: DataChunk, data: d}
}

// clone 复制块及其数据，保留推送编码
func (c Chunk) clone() Chunk {
	if c.kind == DataChunk {
		d := make([]byte, len(c.data))
		copy(d, c.data)
		c.data = d
	}
	return c
}

// pushOpcode 数据块序列化时使用的推送操作码，OP_0 表示长度本身即操作码。
// 记录的推送编码放不下当前长度时退回最短形式。
func (c Chunk) pushOpcode() OpCode {
	n := uint64(len(c.data))
	switch c.push {
	case OP_PUSHDATA1:
		if n <= math.MaxUint8 {
			return c.push
		}
	case OP_PUSHDATA2:
		if n <= math.MaxUint16 {
			return c.push
		}
	case OP_PUSHDATA4:
		if n <= math.MaxUint32 {
			return c.push
		}
	}
	switch {
	case n < uint64(OP_PUSHDATA1):
		return OP_0
	case n <= math.MaxUint8:
		return OP_PUSHDATA1
	case n <= math.MaxUint16:
		return OP_PUSHDATA2
	}
	return OP_PUSHDATA4
}

func (c Chunk) Kind() ChunkKind {
	return c.kind
}

func (c Chunk) IsOpcode() bool {
	return c.kind == OpcodeChunk
}

func (c Chunk) IsData() bool {
	return c.kind == DataChunk
}

// OpCode 操作码块的操作码，数据块返回 OP_0 和 false
func (c Chunk) OpCode() (OpCode, bool) {
	if c.kind != OpcodeChunk {
		return OP_0, false
	}
	return c.op, true
}

// Data 数据块的数据副本，操作码块返回 nil
func (c Chunk) Data() []byte {
	if c.kind != DataChunk {
		return nil
	}
	d := make([]byte, len(c.data))
	copy(d, c.data)
	return d
}

// Equal 比较类型与内容，不比较推送编码
func (c Chunk) Equal(other Chunk) bool {
	if c.kind != other.kind {
		return false
	}
	switch c.kind {
	case OpcodeChunk:
		return c.op == other.op
	case DataChunk:
		return bytes.Equal(c.data, other.data)
	}
	return true
}

// asm 块在 ASM 文本中的 token
func (c Chunk) asm() string {
	if c.kind == OpcodeChunk {
		return c.op.asm()
	}
	return hex.EncodeToString(c.data)
}

func (c Chunk) String() string {
	return c.asm()
}

package script

import (
	"encoding/json"
	"math"

	"github.com/pkg/errors"
)

// Script 比特币脚本，由若干有序的块组成。每个块要么是操作码，要么是一段数据。
type Script struct {
	chunks []Chunk
}

// New 以初始块列表创建脚本，values 的取值规则与 Push 相同
func New(values ...interface{}) (*Script, error) {
	s := &Script{chunks: make([]Chunk, 0, len(values))}
	if _, err := s.Push(values...); err != nil {
		return nil, err
	}
	return s, nil
}

// Push 将一个或多个值追加到脚本末尾：
//	OpCode、Chunk       原样追加
//	[]byte、[]int       数据块，[]int 的每个元素必须在 [0,255]
//	string              字符串的原始字节作为数据块（不做十六进制解码）
//	整数                 作为操作码编码，经操作码表解析
//	[]interface{}       依次追加其中的每个值
// 任何一个值不合法时返回错误，脚本保持不变。
func (s *Script) Push(values ...interface{}) (*Script, error) {
	chunks := make([]Chunk, 0, len(values))
	for _, v := range values {
		var err error
		if chunks, err = appendChunk(chunks, v); err != nil {
			return s, err
		}
	}
	s.chunks = append(s.chunks, chunks...)
	return s, nil
}

// PushOp 追加一个或多个操作码（助记符、整数编码或 OpCode），未定义的操作码一律报错
func (s *Script) PushOp(ops ...interface{}) (*Script, error) {
	chunks := make([]Chunk, 0, len(ops))
	for _, v := range ops {
		var err error
		if chunks, err = appendOpcode(chunks, v); err != nil {
			return s, err
		}
	}
	s.chunks = append(s.chunks, chunks...)
	return s, nil
}

func appendChunk(dst []Chunk, value interface{}) ([]Chunk, error) {
	switch v := value.(type) {
	case Chunk:
		switch v.kind {
		case OpcodeChunk:
			return append(dst, v), nil
		case DataChunk:
			return append(dst, v.clone()), nil
		}
		return dst, errors.Wrap(ErrUnsupportedChunkType, "zero chunk")
	case OpCode:
		if !v.IsValid() {
			return dst, errors.Wrapf(ErrInvalidOpCode, "code %d", byte(v))
		}
		return append(dst, NewOpcodeChunk(v)), nil
	case []byte:
		return append(dst, NewDataChunk(v)), nil
	case string:
		return append(dst, NewDataChunk([]byte(v))), nil
	case []int:
		data := make([]byte, len(v))
		for i, n := range v {
			if n < 0 || n > math.MaxUint8 {
				return dst, errors.Wrapf(ErrUnsupportedChunkType, "element %d of int slice is %d", i, n)
			}
			data[i] = byte(n)
		}
		return append(dst, NewDataChunk(data)), nil
	case []interface{}:
		var err error
		for _, e := range v {
			if dst, err = appendChunk(dst, e); err != nil {
				return dst, err
			}
		}
		return dst, nil
	}

	if code, ok := integerValue(value); ok {
		op, err := codeToOpcode(code)
		if err != nil {
			return dst, err
		}
		return append(dst, NewOpcodeChunk(op)), nil
	}
	return dst, errors.Wrapf(ErrUnsupportedChunkType, "%T", value)
}

func appendOpcode(dst []Chunk, value interface{}) ([]Chunk, error) {
	switch v := value.(type) {
	case OpCode:
		if !v.IsValid() {
			return dst, errors.Wrapf(ErrInvalidOpCode, "code %d", byte(v))
		}
		return append(dst, NewOpcodeChunk(v)), nil
	case string:
		op, err := ByMnemonic(v)
		if err != nil {
			return dst, err
		}
		return append(dst, NewOpcodeChunk(op)), nil
	case []string:
		var err error
		for _, e := range v {
			if dst, err = appendOpcode(dst, e); err != nil {
				return dst, err
			}
		}
		return dst, nil
	case []int:
		var err error
		for _, e := range v {
			if dst, err = appendOpcode(dst, e); err != nil {
				return dst, err
			}
		}
		return dst, nil
	case []interface{}:
		var err error
		for _, e := range v {
			if dst, err = appendOpcode(dst, e); err != nil {
				return dst, err
			}
		}
		return dst, nil
	}

	if code, ok := integerValue(value); ok {
		op, err := codeToOpcode(code)
		if err != nil {
			return dst, err
		}
		return append(dst, NewOpcodeChunk(op)), nil
	}
	return dst, errors.Wrapf(ErrUnsupportedChunkType, "%T is not an opcode", value)
}

func codeToOpcode(code int64) (OpCode, error) {
	if code < 0 || code > math.MaxUint8 {
		return 0, errors.Wrapf(ErrInvalidOpCode, "code %d out of range", code)
	}
	return ByCode(byte(code))
}

// integerValue 将各种整数类型统一为 int64，超出 int64 的无符号数视为越界
func integerValue(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return -1, true
		}
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return -1, true
		}
		return int64(v), true
	}
	return 0, false
}

// Chunks 返回块列表的副本
func (s *Script) Chunks() []Chunk {
	chunks := make([]Chunk, len(s.chunks))
	for i, c := range s.chunks {
		chunks[i] = c.clone()
	}
	return chunks
}

func (s *Script) Len() int {
	return len(s.chunks)
}

// Equal 两个脚本的块逐一相等
func (s *Script) Equal(other *Script) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.chunks) != len(other.chunks) {
		return false
	}
	for i := range s.chunks {
		if !s.chunks[i].Equal(other.chunks[i]) {
			return false
		}
	}
	return true
}

func (s *Script) String() string {
	return s.ToASM()
}

// MarshalJSON 编码为十六进制字符串
func (s *Script) MarshalJSON() ([]byte, error) {
	h, err := s.ToHex()
	if err != nil {
		return nil, err
	}
	return json.Marshal(h)
}

func (s *Script) UnmarshalJSON(data []byte) error {
	var h string
	if err := json.Unmarshal(data, &h); err != nil {
		return errors.Wrap(ErrInvalidBuffer, err.Error())
	}
	parsed, err := FromHex(h)
	if err != nil {
		return err
	}
	s.chunks = parsed.chunks
	return nil
}

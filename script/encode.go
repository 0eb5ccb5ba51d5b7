package script

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// ToASM 序列化为 ASM 文本
func (s *Script) ToASM() string {
	tokens := make([]string, len(s.chunks))
	for i, c := range s.chunks {
		tokens[i] = c.asm()
	}
	return strings.Join(tokens, " ")
}

// ToBuffer 序列化为二进制脚本。解析得到的数据块沿用原有的推送编码，
// 其余数据块使用最短的推送编码，空数据块编码为单字节 0x00。
func (s *Script) ToBuffer() ([]byte, error) {
	size := 0
	for _, c := range s.chunks {
		size += encodedSize(c)
	}

	buf := make([]byte, 0, size)
	for _, c := range s.chunks {
		if c.kind == OpcodeChunk {
			buf = append(buf, byte(c.op))
			continue
		}

		n := len(c.data)
		if uint64(n) > math.MaxUint32 {
			return nil, errors.Wrapf(ErrMalformedScript, "data chunk of %d bytes exceeds OP_PUSHDATA4", n)
		}
		switch c.pushOpcode() {
		case OP_0:
			buf = append(buf, byte(n))
		case OP_PUSHDATA1:
			buf = append(buf, byte(OP_PUSHDATA1), byte(n))
		case OP_PUSHDATA2:
			buf = append(buf, byte(OP_PUSHDATA2), 0, 0)
			binary.LittleEndian.PutUint16(buf[len(buf)-2:], uint16(n))
		default:
			buf = append(buf, byte(OP_PUSHDATA4), 0, 0, 0, 0)
			binary.LittleEndian.PutUint32(buf[len(buf)-4:], uint32(n))
		}
		buf = append(buf, c.data...)
	}
	return buf, nil
}

// ToHex 序列化为十六进制字符串
func (s *Script) ToHex() (string, error) {
	buf, err := s.ToBuffer()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// encodedSize 块序列化后的字节数
func encodedSize(c Chunk) int {
	if c.kind == OpcodeChunk {
		return 1
	}
	n := len(c.data)
	switch c.pushOpcode() {
	case OP_0:
		return 1 + n
	case OP_PUSHDATA1:
		return 2 + n
	case OP_PUSHDATA2:
		return 3 + n
	}
	return 5 + n
}

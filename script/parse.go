package script

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// FromASM 解析以单个空格分隔的 ASM 文本。
// "0" 与 "-1" 为 OP_0 和 OP_1NEGATE 的简写；已定义的助记符解析为操作码；
// OP_UNKNOWN<编码> 解析为未定义的操作码；其余 token 按十六进制解码为数据块。
func FromASM(text string) (*Script, error) {
	tokens := strings.Split(text, " ")
	chunks := make([]Chunk, 0, len(tokens))
	for i, token := range tokens {
		if op, err := ByMnemonic(token); err == nil {
			chunks = append(chunks, NewOpcodeChunk(op))
			continue
		}
		if op, ok := parseUnknown(token); ok {
			chunks = append(chunks, NewOpcodeChunk(op))
			continue
		}
		data, err := hex.DecodeString(token)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidBuffer, "token %d %q: %v", i, token, err)
		}
		chunks = append(chunks, Chunk{kind: DataChunk, data: data})
	}
	return &Script{chunks: chunks}, nil
}

// FromHex 解析十六进制编码的脚本
func FromHex(text string) (*Script, error) {
	buf, err := hex.DecodeString(text)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidBuffer, "decode hex: %v", err)
	}
	return FromBuffer(buf)
}

// FromBuffer 解析二进制脚本。
// 未定义的单字节操作码不会报错，而是作为未知操作码保留，以便表示任意脚本。
// 数据推送声明的长度超出剩余字节时返回 ErrMalformedScript。
// OP_PUSHDATA1/2/4 推送会记录其编码，序列化时按原样写回。
func FromBuffer(buf []byte) (*Script, error) {
	chunks := make([]Chunk, 0, len(buf)/2+1)
	for i := 0; i < len(buf); {
		op := OpCode(buf[i])

		// 长度前缀的字节数
		var prefix int
		var length uint64

		switch {
		case op > OP_0 && op < OP_PUSHDATA1:
			length = uint64(op)

		case op == OP_PUSHDATA1:
			prefix = 1
		case op == OP_PUSHDATA2:
			prefix = 2
		case op == OP_PUSHDATA4:
			prefix = 4

		default:
			chunks = append(chunks, NewOpcodeChunk(op))
			i++
			continue
		}

		off := i + 1
		if len(buf)-off < prefix {
			return nil, errors.Wrapf(ErrMalformedScript,
				"%s requires %d length bytes at offset %d, but script only has %d remaining",
				op, prefix, i, len(buf)-off)
		}
		switch prefix {
		case 1:
			length = uint64(buf[off])
		case 2:
			length = uint64(binary.LittleEndian.Uint16(buf[off:]))
		case 4:
			length = uint64(binary.LittleEndian.Uint32(buf[off:]))
		}
		off += prefix

		if uint64(len(buf)-off) < length {
			return nil, errors.Wrapf(ErrMalformedScript,
				"push at offset %d declares %d bytes, but script only has %d remaining",
				i, length, len(buf)-off)
		}
		end := off + int(length)
		chunk := NewDataChunk(buf[off:end])
		if prefix > 0 {
			chunk.push = op
		}
		chunks = append(chunks, chunk)
		i = end
	}
	return &Script{chunks: chunks}, nil
}

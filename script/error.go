package script

import "github.com/pkg/errors"

// 脚本编解码错误类型，调用方使用 errors.Is 判断
var (
	// ErrInvalidBuffer 输入不是合法的字节序列（例如十六进制串长度为奇数或含非法字符）
	ErrInvalidBuffer = errors.New("invalid buffer")

	// ErrInvalidOpCode 显式构造操作码时，助记符或编码不在操作码表中
	ErrInvalidOpCode = errors.New("invalid opcode")

	// ErrMalformedScript 数据推送声明的长度超过了剩余字节数
	ErrMalformedScript = errors.New("malformed script")

	// ErrUnsupportedChunkType push 的值无法转换为操作码或数据块
	ErrUnsupportedChunkType = errors.New("unsupported chunk type")

	// ErrInvalidPubKeyHash 公钥哈希长度不是20字节
	ErrInvalidPubKeyHash = errors.New("invalid public key hash")

	// ErrTooMuchNullData OP_RETURN 携带的数据超过 MaxDataCarrierSize
	ErrTooMuchNullData = errors.New("too much null data")
)

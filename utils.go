package easyscript

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/treeforest/easyscript/base58check"
	"github.com/treeforest/easyscript/script"
)

func IsValidAddress(addr string) bool {
	version, _, err := base58check.Decode([]byte(addr))
	return err == nil && version == base58check.PubKeyHashVersion
}

// LookupOpcode 先按助记符查找，失败再按十进制编码查找
func LookupOpcode(name string) (script.OpCode, error) {
	op, err := script.ByMnemonic(name)
	if err == nil {
		return op, nil
	}
	code, convErr := strconv.ParseUint(name, 10, 8)
	if convErr != nil {
		return 0, err
	}
	return script.ByCode(byte(code))
}

// ParseScript 按格式解析脚本，format 为 hex 或 asm，空串视为 hex
func ParseScript(format, text string) (*script.Script, error) {
	switch format {
	case FormatHex, "":
		return script.FromHex(text)
	case FormatASM:
		return script.FromASM(text)
	}
	return nil, errors.Errorf("unknown script format %q", format)
}

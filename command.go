package easyscript

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"github.com/treeforest/easyscript/config"
	"github.com/treeforest/easyscript/dao"
	"github.com/treeforest/easyscript/script"
	log "github.com/treeforest/logger"
)

var errUsage = errors.New("invalid command")

type Command struct {
	dbPath string
	out    io.Writer
}

func NewCommand(dbPath string, out io.Writer) *Command {
	if out == nil {
		out = os.Stdout
	}
	return &Command{dbPath: dbPath, out: out}
}

// NewCommandFromConfig 使用配置中的脚本库路径，debug 为真时输出调试日志
func NewCommandFromConfig(conf *config.Config, out io.Writer) *Command {
	if conf.Debug {
		log.SetLevel(log.DEBUG)
	}
	return NewCommand(conf.DBPath, out)
}

func (c *Command) printUsage() {
	fmt.Fprintln(c.out, "Usage:")
	// 编解码
	fmt.Fprintf(c.out, "\tasm2hex -asm ASM -- ASM 转十六进制\n")
	fmt.Fprintf(c.out, "\thex2asm -hex HEX -- 十六进制转 ASM\n")
	fmt.Fprintf(c.out, "\tdecode -hex HEX | -asm ASM -- 逐块输出脚本\n")
	// 操作码
	fmt.Fprintf(c.out, "\topcode -name NAME -- 查询操作码，NAME 为助记符或十进制编码\n")
	fmt.Fprintf(c.out, "\topcodes -- 输出操作码表\n")
	// 标准模板
	fmt.Fprintf(c.out, "\tp2pkh -address ADDRESS -- 生成地址的锁定脚本\n")
	fmt.Fprintf(c.out, "\tnulldata -data HEX -- 生成 OP_RETURN 数据脚本\n")
	// 脚本库
	fmt.Fprintf(c.out, "\tsave -name NAME -hex HEX | -asm ASM -- 保存脚本\n")
	fmt.Fprintf(c.out, "\tload -name NAME -- 读取脚本\n")
	fmt.Fprintf(c.out, "\tlist -- 列出已保存脚本\n")
	fmt.Fprintf(c.out, "\tremove -name NAME -- 删除脚本\n")
}

// Run 执行 args 中的子命令，失败时退出进程
func (c *Command) Run(args []string) {
	err := c.Execute(args)
	if errors.Is(err, errUsage) {
		c.printUsage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func (c *Command) Execute(args []string) error {
	cmdASM2Hex := newFlagSet("asm2hex")
	argASM2Hex := cmdASM2Hex.String("asm", "", "ASM 脚本")

	cmdHex2ASM := newFlagSet("hex2asm")
	argHex2ASM := cmdHex2ASM.String("hex", "", "十六进制脚本")

	cmdDecode := newFlagSet("decode")
	argDecodeHex := cmdDecode.String("hex", "", "十六进制脚本")
	argDecodeASM := cmdDecode.String("asm", "", "ASM 脚本")

	cmdOpcode := newFlagSet("opcode")
	argOpcodeName := cmdOpcode.String("name", "", "助记符或十进制编码")
	cmdOpcodes := newFlagSet("opcodes")

	cmdP2PKH := newFlagSet("p2pkh")
	argP2PKHAddress := cmdP2PKH.String("address", "", "base58check 地址")
	cmdNullData := newFlagSet("nulldata")
	argNullData := cmdNullData.String("data", "", "十六进制数据")

	cmdSave := newFlagSet("save")
	argSaveName := cmdSave.String("name", "", "脚本名")
	argSaveHex := cmdSave.String("hex", "", "十六进制脚本")
	argSaveASM := cmdSave.String("asm", "", "ASM 脚本")
	cmdLoad := newFlagSet("load")
	argLoadName := cmdLoad.String("name", "", "脚本名")
	cmdList := newFlagSet("list")
	cmdRemove := newFlagSet("remove")
	argRemoveName := cmdRemove.String("name", "", "脚本名")

	if len(args) < 1 {
		return errUsage
	}

	switch args[0] {
	case "asm2hex":
		if !parseCommand(cmdASM2Hex, args) {
			return errUsage
		}
		return c.asm2hex(*argASM2Hex)
	case "hex2asm":
		if !parseCommand(cmdHex2ASM, args) {
			return errUsage
		}
		return c.hex2asm(*argHex2ASM)
	case "decode":
		if !parseCommand(cmdDecode, args) || (*argDecodeHex == "") == (*argDecodeASM == "") {
			return errUsage
		}
		return c.decode(*argDecodeHex, *argDecodeASM)
	case "opcode":
		if !parseCommand(cmdOpcode, args) || *argOpcodeName == "" {
			return errUsage
		}
		return c.opcode(*argOpcodeName)
	case "opcodes":
		if !parseCommand(cmdOpcodes, args) {
			return errUsage
		}
		c.printOpcodes()
		return nil
	case "p2pkh":
		if !parseCommand(cmdP2PKH, args) || *argP2PKHAddress == "" {
			return errUsage
		}
		return c.p2pkh(*argP2PKHAddress)
	case "nulldata":
		if !parseCommand(cmdNullData, args) {
			return errUsage
		}
		return c.nullData(*argNullData)
	case "save":
		if !parseCommand(cmdSave, args) || *argSaveName == "" || (*argSaveHex == "") == (*argSaveASM == "") {
			return errUsage
		}
		return c.save(*argSaveName, *argSaveHex, *argSaveASM)
	case "load":
		if !parseCommand(cmdLoad, args) || *argLoadName == "" {
			return errUsage
		}
		return c.load(*argLoadName)
	case "list":
		if !parseCommand(cmdList, args) {
			return errUsage
		}
		return c.list()
	case "remove":
		if !parseCommand(cmdRemove, args) || *argRemoveName == "" {
			return errUsage
		}
		return c.remove(*argRemoveName)
	}
	return errUsage
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(ioutil.Discard)
	return fs
}

func parseCommand(cmd *flag.FlagSet, args []string) bool {
	if err := cmd.Parse(args[1:]); err != nil {
		log.Debugf("parse %s command failed: %v", cmd.Name(), err)
		return false
	}
	return cmd.Parsed()
}

func (c *Command) asm2hex(asm string) error {
	s, err := script.FromASM(asm)
	if err != nil {
		return err
	}
	h, err := s.ToHex()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, h)
	return nil
}

func (c *Command) hex2asm(h string) error {
	s, err := script.FromHex(h)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, s.ToASM())
	return nil
}

func (c *Command) decode(h, asm string) error {
	s, err := parseEither(h, asm)
	if err != nil {
		return err
	}
	c.printScript(s)
	return nil
}

// parseEither 两者只会有一个非空
func parseEither(h, asm string) (*script.Script, error) {
	if h != "" {
		return ParseScript(FormatHex, h)
	}
	return ParseScript(FormatASM, asm)
}

func (c *Command) printScript(s *script.Script) {
	h, err := s.ToHex()
	if err != nil {
		h = err.Error()
	}
	fmt.Fprintf(c.out, "asm: %s\n", s.ToASM())
	fmt.Fprintf(c.out, "hex: %s\n", h)
	fmt.Fprintf(c.out, "chunks:\n")
	for i, chunk := range s.Chunks() {
		if op, ok := chunk.OpCode(); ok {
			fmt.Fprintf(c.out, "\t%d: opcode %s (0x%02x)\n", i, op.Mnemonic(), op.Code())
			continue
		}
		data := chunk.Data()
		fmt.Fprintf(c.out, "\t%d: data[%d] %x\n", i, len(data), data)
	}
}

func (c *Command) opcode(name string) error {
	op, err := LookupOpcode(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s\t%d\t0x%02x\n", op.Mnemonic(), op.Code(), op.Code())
	return nil
}

func (c *Command) printOpcodes() {
	for _, op := range script.Opcodes() {
		fmt.Fprintf(c.out, "%s\t%d\t0x%02x\n", op.Mnemonic(), op.Code(), op.Code())
	}
}

func (c *Command) p2pkh(address string) error {
	if !IsValidAddress(address) {
		return errors.Errorf("ADDRESS %s is not a valid address", address)
	}
	s, err := script.PayToAddress([]byte(address))
	if err != nil {
		return err
	}
	c.printScript(s)
	return nil
}

func (c *Command) nullData(data string) error {
	b, err := hex.DecodeString(data)
	if err != nil {
		return errors.Wrapf(script.ErrInvalidBuffer, "data %q: %v", data, err)
	}
	s, err := script.NullData(b)
	if err != nil {
		return err
	}
	c.printScript(s)
	return nil
}

func (c *Command) openStore() (*dao.DAO, error) {
	return dao.New(c.dbPath)
}

func (c *Command) save(name, h, asm string) error {
	s, err := parseEither(h, asm)
	if err != nil {
		return err
	}

	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err = store.Put(name, s); err != nil {
		return err
	}
	log.Infof("save script %s success", name)
	return nil
}

func (c *Command) load(name string) error {
	if dao.IsNotExistDB(c.dbPath) {
		return dao.ErrNotFound
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	s, err := store.Get(name)
	if err != nil {
		return err
	}
	c.printScript(s)
	return nil
}

func (c *Command) list() error {
	if dao.IsNotExistDB(c.dbPath) {
		return nil
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintf(c.out, "%s\n", name)
	}
	return nil
}

func (c *Command) remove(name string) error {
	if dao.IsNotExistDB(c.dbPath) {
		return dao.ErrNotFound
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err = store.Delete(name); err != nil {
		return err
	}
	log.Infof("remove script %s success", name)
	return nil
}

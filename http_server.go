package easyscript

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/treeforest/easyscript/dao"
	"github.com/treeforest/easyscript/script"
	log "github.com/treeforest/logger"
)

const (
	FormatHex = "hex"
	FormatASM = "asm"
)

type HttpServer struct {
	port int
	dao  *dao.DAO
	srv  *http.Server
}

func NewHttpServer(port int, d *dao.DAO) *HttpServer {
	s := &HttpServer{port: port, dao: d}
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}
	return s
}

// Handler 注册全部路由
func (s *HttpServer) Handler() http.Handler {
	r := gin.Default()

	r.GET("/opcodes", s.handleGetOpcodes)
	r.GET("/opcode/:name", s.handleGetOpcode)
	r.POST("/script/decode", s.handleDecode)
	r.POST("/script/encode", s.handleEncode)
	r.GET("/p2pkh/:address", s.handleGetP2PKH)

	r.GET("/scripts", s.handleGetScripts)
	r.GET("/scripts/:name", s.handleGetScript)
	r.PUT("/scripts/:name", s.handlePutScript)
	r.DELETE("/scripts/:name", s.handleDeleteScript)

	return r
}

// Run 阻塞直到服务关闭
func (s *HttpServer) Run() error {
	log.Infof("http server listen on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.WithStack(err)
	}
	return nil
}

func (s *HttpServer) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type OpcodeView struct {
	Mnemonic string `json:"mnemonic"`
	Code     byte   `json:"code"`
}

type ChunkView struct {
	Type     string  `json:"type"`
	Mnemonic string  `json:"mnemonic,omitempty"`
	Code     *int    `json:"code,omitempty"`
	Data     *string `json:"data,omitempty"` // 数据块总是带有该字段，空数据为 ""
}

type ScriptView struct {
	Name   string      `json:"name,omitempty"`
	ASM    string      `json:"asm"`
	Hex    string      `json:"hex"`
	Chunks []ChunkView `json:"chunks,omitempty"`
}

// ScriptRequest 脚本及其格式，格式为 hex 或 asm，默认 hex
type ScriptRequest struct {
	Format string `json:"format"`
	Script string `json:"script"`
}

func (req ScriptRequest) Parse() (*script.Script, error) {
	return ParseScript(req.Format, req.Script)
}

func newScriptView(s *script.Script, withChunks bool) (ScriptView, error) {
	h, err := s.ToHex()
	if err != nil {
		return ScriptView{}, err
	}
	view := ScriptView{ASM: s.ToASM(), Hex: h}
	if !withChunks {
		return view, nil
	}
	view.Chunks = make([]ChunkView, 0, s.Len())
	for _, c := range s.Chunks() {
		if op, ok := c.OpCode(); ok {
			code := int(op.Code())
			view.Chunks = append(view.Chunks, ChunkView{
				Type:     c.Kind().String(),
				Mnemonic: op.Mnemonic(),
				Code:     &code,
			})
			continue
		}
		data := hex.EncodeToString(c.Data())
		view.Chunks = append(view.Chunks, ChunkView{
			Type: c.Kind().String(),
			Data: &data,
		})
	}
	return view, nil
}

func (s *HttpServer) handleGetOpcodes(c *gin.Context) {
	ops := script.Opcodes()
	resp := make([]OpcodeView, 0, len(ops))
	for _, op := range ops {
		resp = append(resp, OpcodeView{Mnemonic: op.Mnemonic(), Code: op.Code()})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *HttpServer) handleGetOpcode(c *gin.Context) {
	op, err := LookupOpcode(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, OpcodeView{Mnemonic: op.Mnemonic(), Code: op.Code()})
}

func (s *HttpServer) handleDecode(c *gin.Context) {
	req := ScriptRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request obj error"})
		return
	}
	parsed, err := req.Parse()
	if err != nil {
		log.Debugf("decode %s script failed: %v", req.Format, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := newScriptView(parsed, true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *HttpServer) handleEncode(c *gin.Context) {
	type Request struct {
		ASM string `json:"asm"`
	}
	req := Request{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request obj error"})
		return
	}
	parsed, err := script.FromASM(req.ASM)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h, err := parsed.ToHex()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hex": h})
}

func (s *HttpServer) handleGetP2PKH(c *gin.Context) {
	lock, err := script.PayToAddress([]byte(c.Param("address")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := newScriptView(lock, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *HttpServer) handleGetScripts(c *gin.Context) {
	names, err := s.dao.Names()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"names": names})
}

func (s *HttpServer) handleGetScript(c *gin.Context) {
	name := c.Param("name")
	stored, err := s.dao.Get(name)
	if err != nil {
		s.abortWithStoreError(c, err)
		return
	}
	view, err := newScriptView(stored, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	view.Name = name
	c.JSON(http.StatusOK, view)
}

func (s *HttpServer) handlePutScript(c *gin.Context) {
	req := ScriptRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request obj error"})
		return
	}
	parsed, err := req.Parse()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err = s.dao.Put(c.Param("name"), parsed); err != nil {
		s.abortWithStoreError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *HttpServer) handleDeleteScript(c *gin.Context) {
	if err := s.dao.Delete(c.Param("name")); err != nil {
		s.abortWithStoreError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *HttpServer) abortWithStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dao.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, dao.ErrInvalidName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Warnf("script store error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

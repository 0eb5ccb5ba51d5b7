package easyscript

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/treeforest/easyscript/dao"
)

const (
	genesisAddress = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"
	genesisP2PKH   = "76a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac"
)

func newTestServer(t *testing.T) http.Handler {
	gin.SetMode(gin.TestMode)
	store, err := dao.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewHttpServer(0, store).Handler()
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHttpOpcodes(t *testing.T) {
	h := newTestServer(t)

	w := doRequest(t, h, http.MethodGet, "/opcodes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ops []OpcodeView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ops))
	require.NotEmpty(t, ops)
	require.Equal(t, OpcodeView{Mnemonic: "OP_0", Code: 0}, ops[0])

	tests := []struct {
		name     string
		status   int
		mnemonic string
		code     byte
	}{
		{"OP_CHECKSIG", http.StatusOK, "OP_CHECKSIG", 0xac},
		{"0", http.StatusOK, "OP_0", 0x00},
		{"-1", http.StatusOK, "OP_1NEGATE", 0x4f},
		{"118", http.StatusOK, "OP_DUP", 0x76},
		{"OP_BOGUS", http.StatusNotFound, "", 0},
		{"186", http.StatusNotFound, "", 0},
		{"256", http.StatusNotFound, "", 0},
	}
	for _, tt := range tests {
		w = doRequest(t, h, http.MethodGet, "/opcode/"+tt.name, nil)
		require.Equal(t, tt.status, w.Code, tt.name)
		if tt.status != http.StatusOK {
			continue
		}
		var op OpcodeView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &op))
		require.Equal(t, tt.mnemonic, op.Mnemonic)
		require.Equal(t, tt.code, op.Code)
	}
}

func TestHttpDecode(t *testing.T) {
	h := newTestServer(t)

	w := doRequest(t, h, http.MethodPost, "/script/decode", ScriptRequest{Format: FormatHex, Script: "76a90201ff"})
	require.Equal(t, http.StatusOK, w.Code)
	var view ScriptView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Equal(t, "OP_DUP OP_HASH160 01ff", view.ASM)
	require.Equal(t, "76a90201ff", view.Hex)
	require.Len(t, view.Chunks, 3)
	require.Equal(t, "opcode", view.Chunks[0].Type)
	require.Equal(t, "OP_DUP", view.Chunks[0].Mnemonic)
	require.NotNil(t, view.Chunks[0].Code)
	require.Equal(t, 0x76, *view.Chunks[0].Code)
	require.Equal(t, "data", view.Chunks[2].Type)
	require.Nil(t, view.Chunks[0].Data)
	require.NotNil(t, view.Chunks[2].Data)
	require.Equal(t, "01ff", *view.Chunks[2].Data)
	require.Nil(t, view.Chunks[2].Code)

	w = doRequest(t, h, http.MethodPost, "/script/decode", ScriptRequest{Format: FormatASM, Script: "OP_0 OP_RETURN"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Equal(t, "006a", view.Hex)
	require.Equal(t, 0, *view.Chunks[0].Code)

	// 空数据块仍带有 data 字段
	w = doRequest(t, h, http.MethodPost, "/script/decode", ScriptRequest{Format: FormatHex, Script: "4c0000"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `{"type":"data","data":""}`)
	view = ScriptView{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Equal(t, "4c0000", view.Hex)
	require.Len(t, view.Chunks, 2)
	require.Equal(t, "data", view.Chunks[0].Type)
	require.NotNil(t, view.Chunks[0].Data)
	require.Equal(t, "", *view.Chunks[0].Data)
	require.Equal(t, "opcode", view.Chunks[1].Type)
	require.Nil(t, view.Chunks[1].Data)

	// 截断的 push
	w = doRequest(t, h, http.MethodPost, "/script/decode", ScriptRequest{Format: FormatHex, Script: "4c05ff"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, h, http.MethodPost, "/script/decode", ScriptRequest{Format: "base64", Script: "dqk="})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHttpEncode(t *testing.T) {
	h := newTestServer(t)

	w := doRequest(t, h, http.MethodPost, "/script/encode", gin.H{"asm": "OP_DUP OP_HASH160 01ff"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "76a90201ff", resp["hex"])

	w = doRequest(t, h, http.MethodPost, "/script/encode", gin.H{"asm": "OP_DUP zz"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHttpP2PKH(t *testing.T) {
	h := newTestServer(t)

	w := doRequest(t, h, http.MethodGet, "/p2pkh/"+genesisAddress, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view ScriptView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Equal(t, genesisP2PKH, view.Hex)
	require.Equal(t, "OP_DUP OP_HASH160 62e907b15cbf27d5425399ebf6f0fb50ebb88f18 OP_EQUALVERIFY OP_CHECKSIG", view.ASM)

	w = doRequest(t, h, http.MethodGet, "/p2pkh/1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNb", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHttpScripts(t *testing.T) {
	h := newTestServer(t)

	w := doRequest(t, h, http.MethodGet, "/scripts/lock", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, h, http.MethodPut, "/scripts/lock", ScriptRequest{Format: FormatHex, Script: genesisP2PKH})
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, h, http.MethodPut, "/scripts/data", ScriptRequest{Format: FormatASM, Script: "OP_RETURN 68656c6c6f"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, h, http.MethodPut, "/scripts/bad", ScriptRequest{Format: FormatHex, Script: "4d01"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, h, http.MethodGet, "/scripts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Names []string `json:"names"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, []string{"data", "lock"}, list.Names)

	w = doRequest(t, h, http.MethodGet, "/scripts/lock", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view ScriptView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Equal(t, "lock", view.Name)
	require.Equal(t, genesisP2PKH, view.Hex)
	require.Len(t, view.Chunks, 5)

	w = doRequest(t, h, http.MethodDelete, "/scripts/lock", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, h, http.MethodDelete, "/scripts/lock", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

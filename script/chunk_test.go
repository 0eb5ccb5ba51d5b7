package script

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkKinds(t *testing.T) {
	op := NewOpcodeChunk(OP_DUP)
	require.True(t, op.IsOpcode())
	require.False(t, op.IsData())
	require.Equal(t, OpcodeChunk, op.Kind())
	got, ok := op.OpCode()
	require.True(t, ok)
	require.Equal(t, OP_DUP, got)
	require.Nil(t, op.Data())
	require.Equal(t, "OP_DUP", op.String())

	data := NewDataChunk([]byte{0x01, 0xff})
	require.True(t, data.IsData())
	require.Equal(t, DataChunk, data.Kind())
	_, ok = data.OpCode()
	require.False(t, ok)
	require.Equal(t, []byte{0x01, 0xff}, data.Data())
	require.Equal(t, "01ff", data.String())

	require.Equal(t, "opcode", OpcodeChunk.String())
	require.Equal(t, "data", DataChunk.String())
	require.Equal(t, "unknown", ChunkKind(0).String())
}

func TestChunkOwnsData(t *testing.T) {
	src := []byte{1, 2, 3}
	c := NewDataChunk(src)
	src[0] = 9
	require.Equal(t, []byte{1, 2, 3}, c.Data())

	out := c.Data()
	out[1] = 9
	require.Equal(t, []byte{1, 2, 3}, c.Data())
}

func TestChunkEqual(t *testing.T) {
	require.True(t, NewOpcodeChunk(OP_0).Equal(NewOpcodeChunk(OP_0)))
	require.False(t, NewOpcodeChunk(OP_0).Equal(NewOpcodeChunk(OP_1)))
	require.True(t, NewDataChunk(nil).Equal(NewDataChunk([]byte{})))
	require.False(t, NewOpcodeChunk(OP_0).Equal(NewDataChunk(nil)))
	require.False(t, NewDataChunk([]byte{1}).Equal(NewDataChunk([]byte{2})))
}

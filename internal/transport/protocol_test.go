package transport

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_DecodesBuySellCancel(t *testing.T) {
	d := NewDecoder(strings.NewReader("BUY 1 100 5 GOOG\nSELL 2 101 3 GOOG\nCANCEL 1\n"))

	buy, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, KindBuy, buy.Kind)
	assert.Equal(t, uint32(1), buy.OrderID)
	assert.Equal(t, uint32(100), buy.Price)
	assert.Equal(t, uint32(5), buy.Count)
	assert.Equal(t, "GOOG", buy.Instrument)

	sell, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, KindSell, sell.Kind)
	assert.Equal(t, uint32(2), sell.OrderID)

	cancel, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, KindCancel, cancel.Kind)
	assert.Equal(t, uint32(1), cancel.OrderID)

	_, err = d.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecoder_SkipsBlankLines(t *testing.T) {
	d := NewDecoder(strings.NewReader("\n\nBUY 1 100 5 GOOG\n\n"))

	cmd, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, KindBuy, cmd.Kind)

	_, err = d.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecoder_RejectsZeroPriceOrCount(t *testing.T) {
	d := NewDecoder(strings.NewReader("BUY 1 0 5 GOOG\n"))
	_, err := d.Next()
	assert.ErrorIs(t, err, ErrMalformed)

	d = NewDecoder(strings.NewReader("BUY 1 100 0 GOOG\n"))
	_, err = d.Next()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecoder_RejectsWrongFieldCount(t *testing.T) {
	d := NewDecoder(strings.NewReader("BUY 1 100 5\n"))
	_, err := d.Next()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecoder_RejectsUnknownCommand(t *testing.T) {
	d := NewDecoder(strings.NewReader("FROB 1 2 3\n"))
	_, err := d.Next()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecoder_EmptyStreamIsImmediateEOF(t *testing.T) {
	d := NewDecoder(strings.NewReader(""))
	_, err := d.Next()
	assert.ErrorIs(t, err, io.EOF)
}

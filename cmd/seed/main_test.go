package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseCatalog_UTF8(t *testing.T) {
	csv := "name,price,category,stock,description\n" +
		"Audífonos, 120.50 ,Electronics,3,Inalámbricos\n" +
		"Libro,\"9,99\",Books,,Tapa dura\n"

	products, err := parseCatalog(strings.NewReader(csv), false)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Audífonos", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("120.50")))
	assert.Equal(t, 3, products[0].Stock)
	assert.True(t, products[1].Price.Equal(decimal.RequireFromString("9.99")), "coma decimal")
	assert.Equal(t, 0, products[1].Stock)
	assert.Empty(t, products[1].Currency)
}

func TestParseCatalog_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("name,category\nCañón,Toys\n")
	require.NoError(t, err)

	products, err := parseCatalog(bytes.NewReader([]byte(raw)), true)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Cañón", products[0].Name)
}

func TestParseCatalog_Errores(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("sku,price\nA,1\n"), false)
	assert.Error(t, err, "sin columna name")

	_, err = parseCatalog(strings.NewReader("name,price\nA,abc\n"), false)
	assert.Error(t, err)
}

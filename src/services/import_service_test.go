package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mixedCSV = "date,type,category,amount,description\n" +
	"2024-02-01,INCOME,Gaji,5000000,Gaji Bulanan\n" +
	"2024-02-02,EXPENSE,Makanan,abc,Makan siang\n" +
	"2024-02-03,EXPENSE,Transport,25000,Ongkos\n"

func TestImportStoresValidSubset(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.imports.Import(context.Background(), strings.NewReader(mixedCSV), "dompet", false)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, []string{"Line 3: invalid amount (abc)"}, result.Errors)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 2, env.countTransactions(t))
}

func TestImportStrictStoresNothingOnErrors(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.imports.Import(context.Background(), strings.NewReader(mixedCSV), "dompet", true)
	require.NoError(t, err)
	assert.Zero(t, result.Inserted)
	assert.Len(t, result.Data, 2)
	assert.Zero(t, env.countTransactions(t))
}

func TestPreviewDoesNotWrite(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.imports.Preview(context.Background(), strings.NewReader(mixedCSV), "")
	require.NoError(t, err)
	assert.Len(t, result.Data, 2)
	assert.Zero(t, env.countTransactions(t))
}

func TestImportUnknownSource(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.imports.Import(context.Background(), strings.NewReader(mixedCSV), "degiro", false)
	assert.ErrorIs(t, err, ErrParsingFailed)
}

func TestImportRejectsRowsTheLedgerWouldRefuse(t *testing.T) {
	env := newTestEnv(t)
	content := "date,type,category,amount,description\n" +
		"2024-02-01,INCOME,Gaji,5000000,Gaji Bulanan\n" +
		"2024-02-02,EXPENSE,Makanan,50000," + strings.Repeat("x", 1100) + "\n" +
		"2024-02-03,EXPENSE,<b></b>,25000,Ongkos\n" +
		"2024-02-04,EXPENSE,Transport,25000,Ongkos\n"

	result, err := env.imports.Import(context.Background(), strings.NewReader(content), "dompet", false)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, []string{
		"Line 3: description exceeds maximum length of 1024 characters",
		"Line 4: category cannot be empty",
	}, result.Errors)
	require.Len(t, result.Data, 2)
	assert.Equal(t, 2, result.Data[0].Line)
	assert.Equal(t, 5, result.Data[1].Line)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 2, env.countTransactions(t))
}

func TestImportStrictSeesLedgerRejections(t *testing.T) {
	env := newTestEnv(t)
	content := "date,type,category,amount,description\n" +
		"2024-02-01,INCOME,Gaji,5000000,Gaji Bulanan\n" +
		"2024-02-02,EXPENSE,Makanan,50000," + strings.Repeat("x", 1100) + "\n"

	preview, err := env.imports.Preview(context.Background(), strings.NewReader(content), "dompet")
	require.NoError(t, err)
	assert.False(t, preview.Success)
	assert.Len(t, preview.Data, 1)

	result, err := env.imports.Import(context.Background(), strings.NewReader(content), "dompet", true)
	require.NoError(t, err)
	assert.Zero(t, result.Inserted)
	assert.Equal(t, []string{"Line 3: description exceeds maximum length of 1024 characters"}, result.Errors)
	assert.Zero(t, env.countTransactions(t))
}

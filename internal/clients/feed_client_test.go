package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstall/internal/catalog"
)

const sheetCSV = "ID,BookName,Author,Category,Amount,Discount,Status\n" +
	"1,The Penny Black,Rowland Hill,Stamps,\"1,200\",10%,\n" +
	",,,,,,\n" +
	"\n" +
	"2, Inverted Jenny ,Unknown,,₹ 500,,Sold\n"

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sheetCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "The Penny Black", rows[0][catalog.FieldTitle])
	assert.Equal(t, "1,200", rows[0][catalog.FieldAmount])
	assert.Equal(t, "Inverted Jenny", rows[1][catalog.FieldTitle])
	assert.Equal(t, "Sold", rows[1][catalog.FieldStatus])
}

func TestParseCSVShortRecordsAndBOM(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("\ufeffID,BookName,Author\n7,Mauritius Post Office\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "7", rows[0][catalog.FieldID])
	_, ok := rows[0][catalog.FieldAuthor]
	assert.False(t, ok)
}

func TestParseCSVEmpty(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFeedClientFetchRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sheetCSV))
	}))
	defer srv.Close()

	rows, err := NewFeedClient(time.Second).FetchRows(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestFeedClientStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "sheet is private", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewFeedClient(time.Second).FetchRows(context.Background(), srv.URL)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Equal(t, "sheet is private", statusErr.Body)
}

func TestFeedClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewFeedClient(time.Second).FetchRows(context.Background(), url)
	assert.Error(t, err)
}

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/export"
	"github.com/JonMunkholm/catalog-admin/internal/view"
)

type staticLister struct {
	products []catalog.Product
	err      error
}

func (s staticLister) List(context.Context) ([]catalog.Product, error) {
	return s.products, s.err
}

func exportFixture() staticLister {
	return staticLister{products: []catalog.Product{
		{ID: 1, Title: "Blue Shirt", Price: decimal.NewFromInt(20)},
		{ID: 2, Title: "Red Hat", Price: decimal.NewFromInt(15)},
		{ID: 3, Title: "Blue Jeans", Price: decimal.NewFromInt(40), Description: "slim, dark"},
	}}
}

func TestRunExport(t *testing.T) {
	tests := []struct {
		name string
		opts exportOptions
		want string
	}{
		{
			name: "everything in list order",
			opts: exportOptions{},
			want: "ID,Title,Price,Category,Description\n" +
				"1,Blue Shirt,20,,\n" +
				"2,Red Hat,15,,\n" +
				"3,Blue Jeans,40,,slim  dark\n",
		},
		{
			name: "search and price descending",
			opts: exportOptions{Search: "blue", Sort: "price", Desc: true},
			want: "ID,Title,Price,Category,Description\n" +
				"3,Blue Jeans,40,,slim  dark\n" +
				"1,Blue Shirt,20,,\n",
		},
		{
			name: "title ascending",
			opts: exportOptions{Sort: "title"},
			want: "ID,Title,Price,Category,Description\n" +
				"3,Blue Jeans,40,,slim  dark\n" +
				"1,Blue Shirt,20,,\n" +
				"2,Red Hat,15,,\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, runExport(context.Background(), exportFixture(), tt.opts, &buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRunExport_Errors(t *testing.T) {
	var buf bytes.Buffer

	err := runExport(context.Background(), exportFixture(), exportOptions{Search: "nothing"}, &buf)
	assert.ErrorIs(t, err, export.ErrEmptyExport)
	assert.Zero(t, buf.Len())

	err = runExport(context.Background(), exportFixture(), exportOptions{Sort: "category"}, &buf)
	assert.ErrorIs(t, err, view.ErrUnsortableColumn)

	err = runExport(context.Background(), exportFixture(), exportOptions{Desc: true}, &buf)
	assert.ErrorIs(t, err, errDescWithoutSort)
	assert.Zero(t, buf.Len())

	fetchErr := &catalog.NetworkError{Op: "list", StatusCode: 503}
	err = runExport(context.Background(), staticLister{err: fetchErr}, exportOptions{}, &buf)
	assert.ErrorIs(t, err, catalog.ErrNetwork)
}

func TestExportCmd_Flags(t *testing.T) {
	cmd := newExportCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--search", "hat", "--sort", "price", "--desc", "-o", "-"}))

	search, _ := cmd.Flags().GetString("search")
	sort, _ := cmd.Flags().GetString("sort")
	desc, _ := cmd.Flags().GetBool("desc")
	out, _ := cmd.Flags().GetString("out")

	assert.Equal(t, "hat", search)
	assert.Equal(t, "price", sort)
	assert.True(t, desc)
	assert.Equal(t, "-", out)
}

func TestExportCmd_DefaultOutput(t *testing.T) {
	out, err := newExportCmd().Flags().GetString("out")
	require.NoError(t, err)
	assert.Equal(t, export.Filename, out)
}

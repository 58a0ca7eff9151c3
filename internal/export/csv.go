// Package export writes the current product view as a CSV download.
//
// The format is naive and lossy: commas and newlines inside the title and
// description become spaces and nothing is quoted. Category names are
// written as-is.
package export

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
)

// Filename is the fixed download name.
const Filename = "products_export.csv"

// Header is the first line of every export.
const Header = "ID,Title,Price,Category,Description"

// ErrEmptyExport is returned when there is nothing to export.
var ErrEmptyExport = errors.New("no data to export")

var flatten = strings.NewReplacer(",", " ", "\n", " ")

// Write writes products to w. Nothing is written when products is empty.
func Write(w io.Writer, products []catalog.Product) error {
	if len(products) == 0 {
		return ErrEmptyExport
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(Header)
	bw.WriteByte('\n')
	for _, p := range products {
		bw.WriteString(Row(p))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Row formats one product as an export line without the trailing newline.
func Row(p catalog.Product) string {
	return strings.Join([]string{
		strconv.Itoa(p.ID),
		flatten.Replace(p.Title),
		p.Price.String(),
		p.CategoryName(),
		flatten.Replace(p.Description),
	}, ",")
}

package sheet

import (
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

func readXLS(path string) (*Table, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open xls file: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("no sheets found in excel file")
	}

	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, fmt.Errorf("no sheets found in excel file")
	}

	dec := codePageDecoder(wb.Is5ver, wb.Codepage)
	var rows [][]string
	for r := 0; r <= int(ws.MaxRow); r++ {
		row := sheetRow(ws, r)
		if row == nil {
			continue
		}
		cells := make([]string, 0, row.LastCol()+1)
		for c := 0; c <= row.LastCol(); c++ {
			cells = append(cells, toUTF8(dec, row.Col(c)))
		}
		rows = append(rows, trimTrailingEmpty(cells))
	}
	return NewTable(toUTF8(dec, ws.Name), rows), nil
}

// sheetRow returns nil for rows the sheet has no record for; xls.WorkSheet.Row
// dereferences a missing row.
func sheetRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}

// codePages maps the CODEPAGE record of a BIFF5 workbook to its encoding.
var codePages = map[uint16]encoding.Encoding{
	932:  japanese.ShiftJIS,
	936:  simplifiedchinese.GBK,
	949:  korean.EUCKR,
	950:  traditionalchinese.Big5,
	1250: charmap.Windows1250,
	1251: charmap.Windows1251,
	1252: charmap.Windows1252,
}

// codePageDecoder returns the decoder for the 8-bit strings of a BIFF5
// workbook. BIFF8 strings are UTF-16 and come out of the reader decoded, so
// they get nil.
func codePageDecoder(biff5 bool, codepage uint16) *encoding.Decoder {
	if !biff5 {
		return nil
	}
	enc, ok := codePages[codepage]
	if !ok {
		return nil
	}
	return enc.NewDecoder()
}

// toUTF8 decodes a cell with dec. Without a decoder the text is only made
// valid UTF-8.
func toUTF8(dec *encoding.Decoder, s string) string {
	if dec == nil {
		return strings.ToValidUTF8(s, "\uFFFD")
	}
	decoded, err := dec.String(s)
	if err != nil {
		return strings.ToValidUTF8(s, "\uFFFD")
	}
	return decoded
}

func trimTrailingEmpty(cells []string) []string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}
	return cells[:end]
}

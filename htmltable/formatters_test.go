package htmltable

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	simpletable "github.com/domonda/go-simpletable"
)

func singleCellView(value any) simpletable.View {
	return &simpletable.AnyValuesView{Cols: []string{""}, Rows: [][]any{{value}}}
}

func TestJSONCellFormatter_FormatCell(t *testing.T) {
	tests := []struct {
		name    string
		fmt     JSONCellFormatter
		view    simpletable.View
		wantStr string
		wantRaw bool
		wantErr bool
	}{
		{name: "empty nil", fmt: ``, view: singleCellView(nil), wantStr: ``, wantRaw: false, wantErr: false},
		{name: "empty string", fmt: ``, view: singleCellView(""), wantStr: ``, wantRaw: false, wantErr: false},
		{name: "empty nil pointer", fmt: ``, view: singleCellView((*int)(nil)), wantStr: `<pre>null</pre>`, wantRaw: true, wantErr: false},
		{name: "compact string JSON", fmt: ``, view: singleCellView(`{"1": 1}`), wantStr: `<pre>{"1":1}</pre>`, wantRaw: true, wantErr: false},
		{name: "compact []byte JSON", fmt: ``, view: singleCellView([]byte(`{"1": 1}`)), wantStr: `<pre>{"1":1}</pre>`, wantRaw: true, wantErr: false},
		{name: "compact RawMessage JSON", fmt: ``, view: singleCellView(json.RawMessage(`{"1": 1}`)), wantStr: `<pre>{"1":1}</pre>`, wantRaw: true, wantErr: false},
		{name: "indented map", fmt: `  `, view: singleCellView(map[string]int{"a": 1}), wantStr: "<pre>{\n  \"a\": 1\n}</pre>", wantRaw: true, wantErr: false},
		{name: "invalid JSON", fmt: ``, view: singleCellView(`{`), wantStr: ``, wantRaw: false, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			str, raw, err := tt.fmt.FormatCell(context.Background(), tt.view, 0, 0)
			require.Equal(t, tt.wantErr, err != nil, "err result: %v", err)
			require.Equal(t, tt.wantStr, str, "str result")
			require.Equal(t, tt.wantRaw, raw, "raw result")
		})
	}
}

func TestHTMLFormatters(t *testing.T) {
	ctx := context.Background()
	view := singleCellView("<x>")

	str, raw, err := HTMLPreCellFormatter(ctx, view, 0, 0)
	require.NoError(t, err)
	require.True(t, raw)
	require.Equal(t, "<pre>&lt;x&gt;</pre>", str)

	str, _, _ = HTMLSpanClassCellFormatter("status").FormatCell(ctx, view, 0, 0)
	require.Equal(t, "<span class='status'>&lt;x&gt;</span>", str)

	str, _, _ = ValueAsHTMLAnchorCellFormatter(ctx, singleCellView("id1"), 0, 0)
	require.Equal(t, "<a id='id1'>id1</a>", str)
}

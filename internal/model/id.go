// internal/model/id.go
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID はAPIが返す識別子です。数値でも文字列でも受け付け、中身は解釈しません。
type ID string

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return id == ""
}

// MarshalJSON は正規形の整数IDだけを数値として書き出します (サーバー側は整数主キー)。
// "007" や "+5" のように数値に戻すと形が変わるものは文字列のままにします。
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("model.ID: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("model.ID: %w", err)
	}
	*id = ID(n.String())
	return nil
}

package handler

import (
    "bytes"
    "encoding/json"
    "strings"
)

// checkbox is a tri-state boolean input: a form checkbox ("y", "on",
// "true") or a JSON bool.  Set is false when the field was not submitted.
type checkbox struct {
    Set   bool
    Value bool
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query input.
func (b *checkbox) UnmarshalParam(param string) error {
    switch strings.ToLower(strings.TrimSpace(param)) {
    case "y", "yes", "on", "true", "1":
        *b = checkbox{Set: true, Value: true}
    case "n", "no", "off", "false", "0":
        *b = checkbox{Set: true, Value: false}
    default:
        *b = checkbox{}
    }
    return nil
}

// UnmarshalJSON accepts true, false, null or one of the form spellings.
func (b *checkbox) UnmarshalJSON(data []byte) error {
    if bytes.Equal(data, []byte("null")) {
        *b = checkbox{}
        return nil
    }
    var v bool
    if err := json.Unmarshal(data, &v); err == nil {
        *b = checkbox{Set: true, Value: v}
        return nil
    }
    var s string
    if err := json.Unmarshal(data, &s); err != nil {
        return err
    }
    return b.UnmarshalParam(s)
}

// ptr returns nil when the field was not submitted.
func (b checkbox) ptr() *bool {
    if !b.Set {
        return nil
    }
    v := b.Value
    return &v
}

package dto

import (
	"encoding/json"
	"testing"
)

func TestNullableString_TriState(t *testing.T) {
	var absent UpdateTodoRequest
	if err := json.Unmarshal([]byte(`{"title":"x"}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if absent.Description.Set {
		t.Errorf("absent key should leave Set=false")
	}

	var null UpdateTodoRequest
	if err := json.Unmarshal([]byte(`{"description":null}`), &null); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !null.Description.Set || null.Description.Value != nil {
		t.Errorf("null should set Set=true with nil Value, got %+v", null.Description)
	}

	var value UpdateTodoRequest
	if err := json.Unmarshal([]byte(`{"description":"hello"}`), &value); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !value.Description.Set || value.Description.Value == nil || *value.Description.Value != "hello" {
		t.Errorf("expected Set=true Value=hello, got %+v", value.Description)
	}
}

func TestNullableString_RejectsNonString(t *testing.T) {
	var req UpdateTodoRequest
	if err := json.Unmarshal([]byte(`{"description":5}`), &req); err == nil {
		t.Errorf("expected an error for a numeric description")
	}
}

func fieldOf(errs []FieldError) string {
	if len(errs) == 0 {
		return ""
	}
	return errs[0].Field
}

func TestUpdateTodoRequest_Validate(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		wantField string
	}{
		{"null title", `{"title":null}`, "title"},
		{"empty title", `{"title":""}`, "title"},
		{"null completed", `{"completed":null}`, "completed"},
		{"null description ok", `{"description":null}`, ""},
		{"valid", `{"title":"x","completed":true}`, ""},
		{"empty body", `{}`, ""},
	}
	for _, c := range cases {
		var req UpdateTodoRequest
		if err := json.Unmarshal([]byte(c.body), &req); err != nil {
			t.Fatalf("%s: unmarshal: %v", c.name, err)
		}
		if got := fieldOf(req.Validate()); got != c.wantField {
			t.Errorf("%s: expected violated field %q, got %q", c.name, c.wantField, got)
		}
	}
}

func TestUpdateTodoRequest_Validate_TitleTooLong(t *testing.T) {
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	title := string(long)
	req := UpdateTodoRequest{Title: NullableString{Value: &title, Set: true}}
	if got := fieldOf(req.Validate()); got != "title" {
		t.Errorf("expected a title violation, got %q", got)
	}
}

func TestCreateTodoRequest_Validate(t *testing.T) {
	var nullDesc CreateTodoRequest
	if err := json.Unmarshal([]byte(`{"title":"x","description":null}`), &nullDesc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := fieldOf(nullDesc.Validate()); got != "description" {
		t.Errorf("null description should be rejected, got %q", got)
	}

	var absent CreateTodoRequest
	if err := json.Unmarshal([]byte(`{"title":"x"}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if errs := absent.Validate(); len(errs) != 0 {
		t.Errorf("absent description is fine, got %+v", errs)
	}
}

func TestReplaceTodoRequest_Validate(t *testing.T) {
	var nullCompleted ReplaceTodoRequest
	if err := json.Unmarshal([]byte(`{"title":"x","completed":null}`), &nullCompleted); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := fieldOf(nullCompleted.Validate()); got != "completed" {
		t.Errorf("null completed should be rejected, got %q", got)
	}

	var nullDesc ReplaceTodoRequest
	if err := json.Unmarshal([]byte(`{"title":"x","description":null}`), &nullDesc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if errs := nullDesc.Validate(); len(errs) != 0 {
		t.Errorf("null description is allowed on replace, got %+v", errs)
	}
}

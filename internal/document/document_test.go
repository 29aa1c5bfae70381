package document

import (
	"encoding/json"
	"testing"
)

func TestFromJSONPreservesKeyOrder(t *testing.T) {
	data := []byte(`{"zebra": 1, "apple": 2, "mango": 3}`)
	doc, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	want := []string{"zebra", "apple", "mango"}
	keys := doc.Keys()
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], k)
		}
	}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"zebra":1,"apple":2,"mango":3}` {
		t.Errorf("round-trip changed key order or values: %s", out)
	}
}

func TestFromJSONNestedValues(t *testing.T) {
	data := []byte(`{"name":"john","address":{"city":"oslo","zip":"0150"},"tags":["a","b"],"active":true,"score":null}`)
	doc, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	addr, ok := doc.Get("address")
	if !ok {
		t.Fatal("address field missing")
	}
	nested, ok := addr.(*Document)
	if !ok {
		t.Fatalf("address should be *Document, got %T", addr)
	}
	city, _ := nested.Get("city")
	if city != "oslo" {
		t.Errorf("city = %v, want oslo", city)
	}

	tags, ok := doc.Get("tags")
	if !ok {
		t.Fatal("tags field missing")
	}
	arr, ok := tags.([]any)
	if !ok || len(arr) != 2 {
		t.Fatalf("tags should be a 2-element array, got %v", tags)
	}

	active, _ := doc.Get("active")
	if active != true {
		t.Errorf("active = %v, want true", active)
	}

	score, exists := doc.Get("score")
	if !exists || score != nil {
		t.Errorf("score should exist as null, got %v (exists=%v)", score, exists)
	}

	// Nested round-trip stays byte-identical.
	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"name":"john","address":{"city":"oslo","zip":"0150"},"tags":["a","b"],"active":true,"score":null}`
	if string(out) != want {
		t.Errorf("round-trip mismatch:\n got %s\nwant %s", out, want)
	}
}

func TestFromJSONRejectsNonObject(t *testing.T) {
	for _, payload := range []string{`[1,2]`, `"text"`, `42`, `not json`} {
		if _, err := FromJSON([]byte(payload)); err == nil {
			t.Errorf("FromJSON(%q) should fail", payload)
		}
	}
}

func TestNumbersSurviveRoundTrip(t *testing.T) {
	data := []byte(`{"age":30,"pi":3.14,"big":9007199254740993}`)
	doc, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	// 9007199254740993 does not fit in a float64; json.Number keeps it exact.
	if string(out) != `{"age":30,"pi":3.14,"big":9007199254740993}` {
		t.Errorf("numbers changed in round-trip: %s", out)
	}
}

func TestSetAndMerge(t *testing.T) {
	doc, err := FromJSON([]byte(`{"name":"john","age":30}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	patch, err := FromJSON([]byte(`{"age":31,"city":"oslo"}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	doc.Merge(patch)

	age, _ := doc.Get("age")
	if n, ok := age.(json.Number); !ok || n.String() != "31" {
		t.Errorf("age = %v, want 31", age)
	}

	// Overwritten key keeps its position, new key goes last.
	keys := doc.Keys()
	want := []string{"name", "age", "city"}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

func TestClone(t *testing.T) {
	doc, err := FromJSON([]byte(`{"name":"john","address":{"city":"oslo"}}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	clone := doc.Clone()
	clone.Set("name", "jane")
	nested, _ := clone.Get("address")
	nested.(*Document).Set("city", "bergen")

	name, _ := doc.Get("name")
	if name != "john" {
		t.Errorf("clone mutation leaked into original: name = %v", name)
	}
	orig, _ := doc.Get("address")
	city, _ := orig.(*Document).Get("city")
	if city != "oslo" {
		t.Errorf("clone mutation leaked into nested original: city = %v", city)
	}
}

func TestEqual(t *testing.T) {
	a, _ := FromJSON([]byte(`{"name":"john","age":30}`))
	b, _ := FromJSON([]byte(`{"name":"john","age":30}`))
	c, _ := FromJSON([]byte(`{"name":"john","age":31}`))
	d, _ := FromJSON([]byte(`{"age":30,"name":"john"}`))

	if !a.Equal(b) {
		t.Error("identical documents should be equal")
	}
	if a.Equal(c) {
		t.Error("different values should not be equal")
	}
	if a.Equal(d) {
		t.Error("different key order should not be equal")
	}
}

func TestNumberValue(t *testing.T) {
	if f, ok := NumberValue(json.Number("30")); !ok || f != 30 {
		t.Errorf("NumberValue(30) = %v, %v", f, ok)
	}
	if f, ok := NumberValue(json.Number("3.5")); !ok || f != 3.5 {
		t.Errorf("NumberValue(3.5) = %v, %v", f, ok)
	}
	if _, ok := NumberValue("30"); ok {
		t.Error("strings are not numbers")
	}
	if _, ok := NumberValue(true); ok {
		t.Error("booleans are not numbers")
	}
	if _, ok := NumberValue(nil); ok {
		t.Error("null is not a number")
	}
}

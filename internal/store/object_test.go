package store

import (
	"context"
	"errors"
	"io/fs"
	"reflect"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type fakeBucket struct {
	objects  map[string][]byte
	listErr  error
	prefixes []string
}

func (b *fakeBucket) keys(_ context.Context, prefix string) ([]string, error) {
	b.prefixes = append(b.prefixes, prefix)
	if b.listErr != nil {
		return nil, b.listErr
	}
	var keys []string
	for key := range b.objects {
		keys = append(keys, key)
	}
	return keys, nil
}

func (b *fakeBucket) get(_ context.Context, key string) ([]byte, error) {
	data, ok := b.objects[key]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func TestObjectListTrimsPrefix(t *testing.T) {
	bucket := &fakeBucket{objects: map[string][]byte{
		"posts/b.md": []byte("b"),
		"posts/a.md": []byte("a"),
	}}
	store := newObject(bucket, "/posts/")

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []interfaces.ContentEntry{{Name: "a.md"}, {Name: "b.md"}}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("expected %v, got %v", want, entries)
	}
	if len(bucket.prefixes) != 1 || bucket.prefixes[0] != "posts/" {
		t.Fatalf("expected normalised prefix, got %v", bucket.prefixes)
	}
}

func TestObjectRead(t *testing.T) {
	store := newObject(&fakeBucket{objects: map[string][]byte{"posts/a.md": []byte("hello")}}, "posts")

	data, err := store.Read(context.Background(), "a.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected data %q", string(data))
	}

	if _, err := store.Read(context.Background(), "missing.md"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if _, err := store.Read(context.Background(), "../a.md"); !errors.Is(err, ErrInvalidEntryName) {
		t.Fatalf("expected ErrInvalidEntryName, got %v", err)
	}
}

func TestObjectListError(t *testing.T) {
	boom := errors.New("boom")
	store := newObject(&fakeBucket{listErr: boom}, "")

	if _, err := store.List(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped list error, got %v", err)
	}
}

func TestNewObjectValidatesConfig(t *testing.T) {
	cases := map[string]ObjectConfig{
		"endpoint":    {AccessKey: "a", SecretKey: "s", Bucket: "b"},
		"credentials": {Endpoint: "localhost:9000", Bucket: "b"},
		"bucket":      {Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"},
	}
	for name, cfg := range cases {
		if _, err := NewObject(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}

	store, err := NewObject(ObjectConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s", Bucket: "blog", Prefix: "posts"})
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	if store.prefix != "posts/" {
		t.Fatalf("unexpected prefix %q", store.prefix)
	}
}

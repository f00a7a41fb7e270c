package storage

import (
	"context"
	"strings"
	"testing"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	ctx := context.Background()
	saved, err := store.Save(ctx, SaveInput{Name: "atestado.pdf", ContentType: "application/pdf", Data: []byte("conteudo")})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Size != int64(len("conteudo")) {
		t.Fatalf("size = %d", saved.Size)
	}
	if !strings.HasPrefix(saved.URL, "/uploads/") {
		t.Fatalf("url = %q", saved.URL)
	}
	if !strings.HasSuffix(saved.Key, ".pdf") {
		t.Fatalf("key should keep the extension, got %q", saved.Key)
	}

	data, err := store.Open(ctx, saved.Key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if string(data) != "conteudo" {
		t.Fatalf("read back %q", data)
	}

	if err := store.Delete(ctx, saved.Key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, saved.Key); err == nil {
		t.Fatal("expected Open to fail after Delete")
	}
	// deleting again is a no-op
	if err := store.Delete(ctx, saved.Key); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestLocalStoreRejectsEmptyFile(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	if _, err := store.Save(context.Background(), SaveInput{Name: "vazio.txt"}); err == nil {
		t.Fatal("expected empty payload to be rejected")
	}
}

func TestSanitizeExt(t *testing.T) {
	cases := map[string]string{
		"laudo.PDF":         ".pdf",
		"planilha.xlsx":     ".xlsx",
		"sem-extensao":      "",
		"estranho.p d f":    "",
		"listagem.csv":      ".csv",
		"script.sh;rm -rf/": "",
	}
	for name, want := range cases {
		if got := sanitizeExt(name); got != want {
			t.Errorf("sanitizeExt(%q) = %q, want %q", name, got, want)
		}
	}
}

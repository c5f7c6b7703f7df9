package sigma

import "testing"

// setupClient builds and initializes a Client[DocID] sized for short test
// keywords. A small security parameter keeps the test fast; Setup only
// requires a positive multiple of 8.
func setupClient(t *testing.T) *Client[DocID] {
	t.Helper()
	c := NewClient[DocID](0.01, 4)
	if err := c.Setup(128); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	return c
}

func TestWildcardSearchMatchesAndRejects(t *testing.T) {
	client := setupClient(t)
	server := NewServer[DocID]()

	words := map[DocID]string{1: "cat", 2: "cut", 3: "sit", 4: "cet", 5: "dot"}
	for ind, w := range words {
		server.Add(client.AddToken(ind, w))
	}

	cases := []struct {
		query string
		want  map[DocID]bool
	}{
		{"cat", map[DocID]bool{1: true}},
		{"c_t", map[DocID]bool{1: true, 2: true, 4: true}},
		{"*t", map[DocID]bool{1: true, 2: true, 3: true, 4: true, 5: true}},
		{"c__", map[DocID]bool{1: true, 2: true, 4: true}},
		{"sat", map[DocID]bool{}},
	}

	for _, c := range cases {
		tok := client.SrchToken(c.query)
		got := server.Search(tok)
		gotSet := make(map[DocID]bool, len(got))
		for _, g := range got {
			gotSet[g] = true
		}
		if len(gotSet) != len(c.want) {
			t.Fatalf("query %q: got %v, want %v", c.query, gotSet, c.want)
		}
		for ind := range c.want {
			if !gotSet[ind] {
				t.Fatalf("query %q: expected document %d in results, got %v", c.query, ind, gotSet)
			}
		}
	}
}

func TestDeleteRemovesAllMatchingRecords(t *testing.T) {
	client := setupClient(t)
	server := NewServer[DocID]()

	// Two distinct documents indexed under the same keyword produce
	// distinct BF-ids (ind differs), so only repeated tokens for the exact
	// same (ind, w) collide.
	server.Add(client.AddToken(1, "abc"))
	server.Add(client.AddToken(1, "abc")) // duplicate add for the same pair
	server.Add(client.AddToken(2, "abc"))

	del := client.DelToken(1, "abc")
	server.Delete(del)

	got := server.Search(client.SrchToken("abc"))
	gotSet := make(map[DocID]bool, len(got))
	for _, g := range got {
		gotSet[g] = true
	}
	if gotSet[1] {
		t.Fatal("expected both copies of (1, \"abc\") to be removed by a single delete")
	}
	if !gotSet[2] {
		t.Fatal("expected (2, \"abc\") to survive the delete of (1, \"abc\")")
	}
}

func TestEmptyQueryAfterEmptyKeyword(t *testing.T) {
	client := setupClient(t)
	server := NewServer[DocID]()

	server.Add(client.AddToken(1, ""))

	got := server.Search(client.SrchToken(""))
	found := false
	for _, g := range got {
		if g == 1 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the empty query to match a document indexed with the empty keyword")
	}
}

func TestSearchDeduplicatesRepeatedAdds(t *testing.T) {
	client := setupClient(t)
	server := NewServer[DocID]()

	for i := 0; i < 10; i++ {
		server.Add(client.AddToken(1, "abc"))
	}

	got := server.Search(client.SrchToken("abc"))
	if len(got) != 1 {
		t.Fatalf("got %d results, want exactly 1 (deduplicated)", len(got))
	}
}

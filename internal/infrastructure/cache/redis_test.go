package cache

import "testing"

func TestRedisKey(t *testing.T) {
	t.Parallel()

	c := &RedisCache{prefix: "newssummary"}
	got := c.key(testKey())
	want := "newssummary:20220401-RUSSIA1-OpenAI-English-30-20"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

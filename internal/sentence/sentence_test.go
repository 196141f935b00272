package sentence

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "simple sentences",
			in:   "The Fed sets rates. Banks follow! Do they always?",
			want: []string{"The Fed sets rates.", "Banks follow!", "Do they always?"},
		},
		{
			name: "abbreviation does not split",
			in:   "Mr. Powell spoke today. Markets rallied.",
			want: []string{"Mr. Powell spoke today.", "Markets rallied."},
		},
		{
			name: "blank",
			in:   "   ",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Split(tt.in)); diff != "" {
				t.Errorf("Split() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPack(t *testing.T) {
	sents := []string{"aaaa.", "bbbb.", "cccccccccccc.", "d."}
	got := Pack(sents, 11)
	want := []string{"aaaa. bbbb.", "cccccccccccc.", "d."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Pack() mismatch (-want +got):\n%s", diff)
	}

	if got := Pack(nil, 10); got != nil {
		t.Errorf("Pack(nil) = %v", got)
	}
}

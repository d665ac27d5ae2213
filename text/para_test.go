package text

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPara(t *testing.T) {
	testCases := []struct {
		name  string
		build func(p *Para)
		want  string
	}{
		{
			name:  "empty",
			build: func(p *Para) {},
			want:  "",
		},
		{
			name: "sentences",
			build: func(p *Para) {
				p.StartSentence("the chance of dying", "this year is small")
				p.StartSentence("it grows", " ", "every year")
			},
			want: "The chance of dying this year is small. It grows every year.",
		},
		{
			name: "clauses",
			build: func(p *Para) {
				p.StartSentence("the most likely year is 2071")
				p.AppendClause("at the age of eighty-six")
				p.AddCompleteSentence("that is a long way off!")
			},
			want: "The most likely year is 2071, at the age of eighty-six. That is a long way off.",
		},
		{
			name: "aside",
			build: func(p *Para) {
				p.Continue("by the end of 2071")
				p.AppendAsAside("the drawn year")
				p.FinishSentence("most of the distribution is used up")
			},
			want: "By the end of 2071, the drawn year, most of the distribution is used up.",
		},
		{
			name: "clause starts sentence",
			build: func(p *Para) {
				p.AppendClause("first")
				p.FinishSentenceWithTerminator("?")
				p.AppendClause("second")
			},
			want: "First? Second.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p Para
			tc.build(&p)
			if diff := cmp.Diff(tc.want, p.Text()); diff != "" {
				t.Errorf("Text() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package eval_test

import (
	"context"
	"fmt"

	"chainguard.dev/r2r/eval"
)

func ExampleNew() {
	scorer := eval.ScorerFunc(func(_ context.Context, query, contextText, completion string) (eval.Result, error) {
		return eval.Result{"answer_relevancy": {"score": 0.92}}, nil
	})

	d, err := eval.New("deepeval", scorer)
	if err != nil {
		panic(err)
	}

	res, forwarded, err := d.Evaluate(context.Background(), "Q", "C", "A")
	if err != nil {
		panic(err)
	}
	fmt.Println(forwarded, res["answer_relevancy"]["score"])

	// Output:
	// true 0.92
}

func ExampleNew_unsupportedProvider() {
	_, err := eval.New("bogus", eval.ScorerFunc(nil))
	fmt.Println(err)

	// Output:
	// invalid provider "bogus": unsupported evaluation provider
}

func ExampleWithSamplingRate() {
	calls := 0
	scorer := eval.ScorerFunc(func(context.Context, string, string, string) (eval.Result, error) {
		calls++
		return eval.Result{}, nil
	})

	d, err := eval.New("parea", scorer, eval.WithSamplingRate(0))
	if err != nil {
		panic(err)
	}

	res, forwarded, err := d.Evaluate(context.Background(), "Q", "C", "A")
	fmt.Println(res == nil, forwarded, err, calls)

	// Output:
	// true false <nil> 0
}

// Command perceptron trains a binary perceptron on a CSV file or a synthetic
// dataset and reports the learned weights and training accuracy.
//
//	perceptron train --data points.csv --header --n-iter 200 --lr 0.1
//	perceptron demo --dataset xor --plot xor.png
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

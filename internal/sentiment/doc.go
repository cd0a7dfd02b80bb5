// Package sentiment implements the sentiment classification pipeline.
//
// A Classifier runs an ordered chain of strategies (remote LLM, remote
// classifier, local lexicon) and returns the first successful result. Every
// strategy's raw output is normalized into the same Result shape before it is
// accepted; the lexicon strategy terminates the chain and cannot fail, so
// classification never fails outward.
package sentiment

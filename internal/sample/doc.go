// Package sample generates demonstration submission data.
//
// The generated CSV contains a fixed pool of authors whose entries vary
// in formatting the way real conference exports do: inverted names,
// abbreviated first names, alternate affiliation spellings, and for one
// author several distinct email addresses. Three authors exceed the
// default submission limit of two papers, so analyzing the sample with
// default settings always finds violations to display.
//
// Generation is deterministic for a given seed, which keeps tests and
// documentation examples stable.
package sample

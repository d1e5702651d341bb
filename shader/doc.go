// The shader subpackage defines the image transforms that can be
// attached to grid cells and applied to colorized glyphs before they
// are cached and blitted.
//
// Transforms form a closed set (see [Kind]). A [Transform] is a small
// comparable value, and a [Chain] is an immutable, encoded sequence of
// transforms. This makes chains hashable, which is what allows the glyph
// cache to use them as part of its keys. Two chains are equal only if
// they contain the same transforms in the same order: [Flip](true, false)
// and two consecutive flips are different chains, even if the second
// one is visually a no-op.
//
// Transforms never mutate their input and never change the image bounds.
// Invalid parameters (e.g. a negative blur radius) turn a transform into
// a no-op instead of failing, as transforms run on the hot drawing path.
// Use [Chain.Validate]() if you want to know about those cases.
package shader

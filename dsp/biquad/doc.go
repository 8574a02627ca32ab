// Package biquad implements second-order IIR filter sections in Direct
// Form II Transposed, RBJ cookbook designs for the pass shapes used by the
// synthesizer voice path, and a smoothed wrapper that ramps cutoff and Q
// towards new targets to avoid zipper noise on live parameter changes.
package biquad

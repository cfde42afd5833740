//go:build amd64 || arm64 || ppc64 || ppc64le || s390x || mips64 || mips64le || riscv64 || loong64

package extmul

// HasIntrinsic reports whether the target has a hardware 64×64→128 multiply
// that bits.Mul64 is lowered to.
const HasIntrinsic = true

package substrate

// RaoPerTao is the chain's base-unit scale: 1 TAO = 1e9 RAO. Alpha tokens
// share the same 1e9 decimals.
const RaoPerTao = 1_000_000_000

// i64f64Divisor converts the chain's I64F64 fixed-point bits to a real value.
const i64f64Divisor = float64(1 << 32)

// RaoToTao converts a RAO amount to TAO.
func RaoToTao(rao uint64) float64 {
	return float64(rao) / RaoPerTao
}

// TaoToRao converts a TAO amount to RAO, truncating sub-RAO precision.
func TaoToRao(tao float64) uint64 {
	if tao <= 0 {
		return 0
	}
	return uint64(tao * RaoPerTao)
}

// DecodePrice decodes an I64F64 fixed-point price: bits / 2^32.
func DecodePrice(bits uint64) float64 {
	return float64(bits) / i64f64Divisor
}

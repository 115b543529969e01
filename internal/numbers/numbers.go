package numbers

import (
	"fmt"
	"math/rand"
	"strings"
)

// IsPrime reports whether n is prime using trial division by odd candidates.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// RandomInt returns a uniform integer in [min, max], both inclusive.
func RandomInt(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// Factors returns every positive divisor of n in ascending order.
func Factors(n int) []int {
	if n < 1 {
		return nil
	}
	var low, high []int
	for d := 1; d*d <= n; d++ {
		if n%d != 0 {
			continue
		}
		low = append(low, d)
		if d != n/d {
			high = append(high, n/d)
		}
	}
	for i := len(high) - 1; i >= 0; i-- {
		low = append(low, high[i])
	}
	return low
}

// PrimeFactorization returns the prime factors of n in non-decreasing order.
func PrimeFactorization(n int) []int {
	var factors []int
	if n < 2 {
		return factors
	}
	for d := 2; d*d <= n; d++ {
		for n%d == 0 {
			factors = append(factors, d)
			n /= d
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

// FactorizationString renders n as "12 = 2 × 2 × 3". Numbers without
// prime factors render as "n = n".
func FactorizationString(n int) string {
	factors := PrimeFactorization(n)
	if len(factors) == 0 {
		return fmt.Sprintf("%d = %d", n, n)
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = fmt.Sprint(f)
	}
	return fmt.Sprintf("%d = %s", n, strings.Join(parts, " × "))
}

// PrimesInRange lists the primes in [min, max].
func PrimesInRange(min, max int) []int {
	var primes []int
	for n := min; n <= max; n++ {
		if IsPrime(n) {
			primes = append(primes, n)
		}
	}
	return primes
}

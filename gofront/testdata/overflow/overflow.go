// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package overflow holds constants outside the 32-bit shader range.
package overflow

func big() int { return 3000000000 }

func small() int { return -3000000000 }

func wide() uint { return 5000000000 }

func fits() int { return 2147483647 }

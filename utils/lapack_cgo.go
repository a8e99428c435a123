//go:build cgo && netlib

package utils

import (
	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

func init() {
	blas64.Use(netblas.Implementation{})
	BLASImplementation = "netlib"
	log.Debug("using netlib to accelerate BLAS")
}

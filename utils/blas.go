package utils

// BLASImplementation names the BLAS behind gonum matrix products, netlib when built with the netlib tag
var BLASImplementation = "gonum"

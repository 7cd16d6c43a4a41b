package engine

import (
	"fmt"
	"os"
	"strings"
)

// Device selects the compute device for inference.
type Device string

const (
	DeviceAuto Device = "auto"
	DeviceCPU  Device = "cpu"
	DeviceCUDA Device = "cuda"
)

// ParseDevice converts a configuration value into a Device.
func ParseDevice(s string) (Device, error) {
	switch d := Device(strings.ToLower(strings.TrimSpace(s))); d {
	case DeviceAuto, DeviceCPU, DeviceCUDA:
		return d, nil
	case "":
		return DeviceAuto, nil
	default:
		return "", fmt.Errorf("unknown device %q (want auto, cpu or cuda)", s)
	}
}

// acceleratorAvailable reports whether an NVIDIA device is visible to the process.
var acceleratorAvailable = func() bool {
	if v, ok := os.LookupEnv("CUDA_VISIBLE_DEVICES"); ok && (v == "" || v == "-1") {
		return false
	}
	_, err := os.Stat("/dev/nvidiactl")
	return err == nil
}

// SelectDevice resolves DeviceAuto to the accelerator when one is present,
// falling back to the CPU.
func SelectDevice(requested Device) Device {
	if requested != DeviceAuto {
		return requested
	}
	if acceleratorAvailable() {
		return DeviceCUDA
	}
	return DeviceCPU
}

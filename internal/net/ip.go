package net

import (
	"fmt"
	"net"

	"go.uber.org/zap"
)

// routeProbe is never contacted: dialing UDP only asks the kernel which
// source address it would route from.
const routeProbe = "8.8.8.8:80"

// GetOutgoingIP returns the LAN address viewers should use to reach the
// mirror. Without a default route it picks the first IPv4 interface
// address, and loopback as a last resort.
func GetOutgoingIP(logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ip, ok := routedIP(); ok {
		return ip, nil
	}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", fmt.Errorf("list interface addresses: %w", err)
	}
	if ip, ok := firstLANIPv4(addrs); ok {
		return ip, nil
	}
	logger.Warn("No LAN address found, mirror is only reachable from this machine")
	return "127.0.0.1", nil
}

func routedIP() (string, bool) {
	conn, err := net.Dial("udp", routeProbe)
	if err != nil {
		return "", false
	}
	defer conn.Close()
	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP.IsUnspecified() {
		return "", false
	}
	return addr.IP.String(), true
}

func firstLANIPv4(addrs []net.Addr) (string, bool) {
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if v4 := ipnet.IP.To4(); v4 != nil {
			return v4.String(), true
		}
	}
	return "", false
}

// MirrorURL is the address viewers open in a browser.
func MirrorURL(ip string, port int) string {
	return fmt.Sprintf("http://%s/", net.JoinHostPort(ip, fmt.Sprint(port)))
}

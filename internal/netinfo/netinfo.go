// Package netinfo finds the address other machines on the LAN can use to
// reach this host.
package netinfo

import (
	"fmt"
	"net"
	"strconv"
)

// Loopback is reported when no outward-facing address can be determined.
const Loopback = "127.0.0.1"

// probeAddr is never contacted; connecting a UDP socket sends no packet, it
// only asks the kernel to pick a route and a source address.
const probeAddr = "10.255.255.255:1"

// DialFunc matches net.Dial.
type DialFunc func(network, address string) (net.Conn, error)

// Detector resolves the outbound IP using Dial.
type Detector struct {
	Dial DialFunc
}

// OutboundIP returns this host's outward-facing IPv4 address using net.Dial.
func OutboundIP() string {
	return Detector{Dial: net.Dial}.OutboundIP()
}

// OutboundIP returns the local address the kernel would use to reach the
// probe address, or Loopback on any failure.
func (d Detector) OutboundIP() string {
	dial := d.Dial
	if dial == nil {
		dial = net.Dial
	}

	conn, err := dial("udp", probeAddr)
	if err != nil {
		return Loopback
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP == nil || addr.IP.IsUnspecified() {
		return Loopback
	}
	return addr.IP.String()
}

// AppURLs returns the loopback and LAN URLs for the entry page.
func AppURLs(lanIP string, port int, entry string) (local, lan string) {
	local = fmt.Sprintf("http://localhost:%d/%s", port, entry)
	lan = fmt.Sprintf("http://%s/%s", net.JoinHostPort(lanIP, strconv.Itoa(port)), entry)
	return local, lan
}

package main

import (
	"fmt"
	"io"
	"static-server/internal/netinfo"

	"github.com/fatih/color"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	urlColor  = color.New(color.FgCyan)
	hintColor = color.New(color.Faint)
)

// printBanner writes the startup message with the loopback and LAN URLs
func printBanner(w io.Writer, root string, port int, entry, lanIP string) {
	local, lan := netinfo.AppURLs(lanIP, port, entry)

	okColor.Fprintln(w, "✅ Secure server started!")
	fmt.Fprintf(w, "Serving %s with cross-origin isolation enabled\n", root)
	hintColor.Fprintln(w, "🚀 Press Ctrl+C to stop the server.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- To access the app ---")
	fmt.Fprintf(w, "  > On this computer:  %s\n", urlColor.Sprint(local))
	fmt.Fprintf(w, "  > On other devices in your network: %s\n", urlColor.Sprint(lan))
	fmt.Fprintln(w, "-------------------------")
}

func printShutdown(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "👋 Ctrl+C received, shutting down the server...")
}

// Package hotspot turns a wireless access point on or off by running a
// fixed sequence of privileged commands (nmcli, ip, sysctl, iptables,
// systemctl). It is independent of the dotfile linker.
package hotspot

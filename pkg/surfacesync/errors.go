package surfacesync

import "errors"

var (
	ErrReadHostsFile  = errors.New("surfacesync.read_hosts_file")
	ErrParseHostsFile = errors.New("surfacesync.parse_hosts_file")
	ErrStoreRead      = errors.New("surfacesync.store_read_failed")
	ErrPreferenceRead = errors.New("surfacesync.preference_read_failed")
	ErrJarWrite       = errors.New("surfacesync.jar_write_failed")
	ErrJarFlush       = errors.New("surfacesync.jar_flush_failed")
)

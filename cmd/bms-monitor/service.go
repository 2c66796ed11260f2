/*
bms-monitor - pack state-of-charge and state-of-health monitor
Copyright (C) 2025, Voltlap

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"encoding/json"
	"errors"

	"github.com/godbus/dbus"
	"github.com/godbus/dbus/introspect"
)

const (
	dbusName = "com.voltlap.BMS"
	dbusPath = "/com/voltlap/BMS"
)

type service struct {
	mon *monitor
}

func startService(mon *monitor) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}
	reply, err := conn.RequestName(dbusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return errors.New("name already taken")
	}

	s := &service{
		mon: mon,
	}
	conn.Export(s, dbusPath, dbusName)
	conn.Export(genIntrospectable(s), dbusPath, "org.freedesktop.DBus.Introspectable")
	return nil
}

func genIntrospectable(v interface{}) introspect.Introspectable {
	node := &introspect.Node{
		Interfaces: []introspect.Interface{{
			Name:    dbusName,
			Methods: introspect.Methods(v),
		}},
	}
	return introspect.NewIntrospectable(node)
}

// SOC returns the current state-of-charge estimate in percent.
func (s service) SOC() (float64, *dbus.Error) {
	return float64(s.mon.status().SOCPercent), nil
}

// SOH returns the current state-of-health estimate in percent.
func (s service) SOH() (float64, *dbus.Error) {
	return float64(s.mon.status().SOHPercent), nil
}

// Status returns the full estimator snapshot as JSON.
func (s service) Status() (string, *dbus.Error) {
	data, err := json.Marshal(s.mon.status())
	if err != nil {
		return "", makeDbusError(".StatusError", err)
	}
	return string(data), nil
}

func makeDbusError(name string, err error) *dbus.Error {
	return &dbus.Error{
		Name: dbusName + name,
		Body: []interface{}{err.Error()},
	}
}

// The armory command is a small convenience tool for inspecting and editing the
// weapons stored in the configured database.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/dcrodman/slash/internal/core"
	"github.com/dcrodman/slash/internal/core/data"
	"github.com/dcrodman/slash/internal/weapon"
)

var (
	configFlag = flag.String("config", "./", "Path to the directory containing the config file.")
	list       = flag.Bool("list", false, "List the stored weapons.")
	add        = flag.Bool("add", false, "Add a weapon lying in the world.")
	remove     = flag.Bool("delete", false, "Soft delete a weapon.")
)

func main() {
	flag.Parse()

	config, err := core.LoadConfig(*configFlag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := os.Chdir(*configFlag); err != nil {
		fmt.Println("error changing to config directory:", err)
		os.Exit(1)
	}

	db, err := data.Initialize(config.Database.Engine, config.DataSource(), config.Debugging.DatabaseLoggingEnabled)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	// defer so os.Exit doesn't prevent our clean up.
	retCode := 0
	defer func() {
		if err != nil {
			fmt.Println(err.Error())
		}
		_ = data.Shutdown(db)
		os.Exit(retCode)
	}()

	switch {
	case *list:
		err = listWeapons(db)
	case *add:
		n := scanInput("Name")
		l := scanInput("Location (x y z)")
		err = addWeapon(db, n, l)
	case *remove:
		id := scanInput("ID")
		err = deleteWeapon(db, id)
	default:
		flag.Usage()
		retCode = 1
	}
	if err != nil {
		retCode = 1
	}
}

func scanInput(prompt string) string {
	fmt.Printf("%s: ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()
	return scanner.Text()
}

func listWeapons(db *gorm.DB) error {
	weapons, err := data.FindWeapons(db)
	if err != nil {
		return fmt.Errorf("failed to list weapons: %v", err)
	}
	for _, w := range weapons {
		fmt.Printf("%4d  %-16s %-10s %-16s (%.1f, %.1f, %.1f)\n",
			w.ID, w.Name, weapon.ItemState(w.ItemState), w.Socket, w.LocationX, w.LocationY, w.LocationZ)
	}
	return nil
}

func addWeapon(db *gorm.DB, name, location string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("a weapon needs a name")
	}
	var coords [3]float64
	if fields := strings.Fields(location); len(fields) > 0 {
		if len(fields) != 3 {
			return fmt.Errorf("location needs 3 coordinates, got %d", len(fields))
		}
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return fmt.Errorf("bad coordinate %q: %v", f, err)
			}
			coords[i] = v
		}
	}

	id, err := data.NextWeaponID(db)
	if err != nil {
		return fmt.Errorf("failed to allocate weapon id: %v", err)
	}
	rec := &data.Weapon{
		ID:        id,
		Name:      name,
		ItemState: uint8(weapon.Unequipped),
		LocationX: coords[0],
		LocationY: coords[1],
		LocationZ: coords[2],
	}
	if err := data.UpsertWeapon(db, rec); err != nil {
		return fmt.Errorf("failed to add weapon: %v", err)
	}
	fmt.Println("added weapon with ID:", rec.ID)
	return nil
}

func deleteWeapon(db *gorm.DB, idText string) error {
	id, err := strconv.ParseUint(strings.TrimSpace(idText), 10, 64)
	if err != nil {
		return fmt.Errorf("bad weapon id %q: %v", idText, err)
	}
	rec, err := data.FindWeapon(db, id)
	if err != nil {
		return fmt.Errorf("failed to look up weapon: %v", err)
	}
	if rec == nil {
		return fmt.Errorf("no weapon with ID %d", id)
	}
	if err := data.DeleteWeapon(db, id); err != nil {
		return fmt.Errorf("failed to delete weapon: %v", err)
	}
	fmt.Println("deleted weapon", rec.Name)
	return nil
}

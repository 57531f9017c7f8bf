// Package confirm obtains operator approval before the bridge mutates the host.
//
// A Provider blocks until the operator decides. Three providers exist:
//   - KDialog: KDE yes/no dialog (`kdialog --yesno`)
//   - Zenity: GNOME question dialog (`zenity --question`)
//   - Console: prompt on the terminal, approve only on a typed "YES"
//
// Select picks one provider at startup from the environment. The choice is
// never re-detected per request.
package confirm

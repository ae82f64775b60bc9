// Package credstore provides implementations of the durable credential slot:
// a single named register holding the opaque bearer token between process
// runs. Writes overwrite, Clear erases, and an absent slot reads as "".
package credstore

package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., mongodb) inside this directory.

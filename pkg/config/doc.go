/*
Package config declares commands in YAML or JSON instead of Go.

A definitions document lists commands and their branch trees; action and
asset names are resolved through Bindings when the document is built:

	commands:
	  - label: component
	    aliases: [comp]
	    branches:
	      - literal: list
	        execute: component.list
	      - literal: start
	        branches:
	          - identity: component
	            assets: [component]
	            cooldown: 10s
	            execute: component.start

Every problem in a document is reported at once as joined DefinitionErrors.
*/
package config
